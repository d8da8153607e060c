package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietroom/rehearse/internal/config"
	"github.com/quietroom/rehearse/internal/engine"
	"github.com/quietroom/rehearse/internal/skills"
	"github.com/quietroom/rehearse/internal/store"
)

var (
	practiceSkill    string
	practicePartner  string
	practiceScenario string
	practiceGoals    []string
	practiceCoaching string
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run an interactive practice session in the terminal",
	Long: `Run an interactive practice session. Type messages to the partner;
slash commands control the session:

  /hints        show active coaching hints
  /goal N       toggle goal N complete
  /technique T  record that you tried technique T
  /pause        pause the session
  /resume       resume the session
  /end          end the session and show insights
  /save         save an ended session to history and exit
  /quit         discard and exit`,
	RunE: runPractice,
}

func init() {
	practiceCmd.Flags().StringVar(&practiceSkill, "skill", "active-listening", "skill id to practice")
	practiceCmd.Flags().StringVar(&practicePartner, "partner", "Alex", "partner display name")
	practiceCmd.Flags().StringVar(&practiceScenario, "scenario", "", "scenario description (defaults to the skill's first practice scenario)")
	practiceCmd.Flags().StringArrayVar(&practiceGoals, "goal", nil, "session goal (repeatable)")
	practiceCmd.Flags().StringVar(&practiceCoaching, "coaching", "active", "coaching level: off, subtle, active")
}

func runPractice(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	scenario := practiceScenario
	if scenario == "" {
		if sk, ok := skills.ByID(practiceSkill); ok && len(sk.PracticeScenarios) > 0 {
			scenario = sk.PracticeScenarios[0]
		}
	}

	eng := engine.New(db,
		engine.WithTypingDelay(cfg.Practice.TypingDelay()),
		engine.WithHintAutoDismiss(cfg.Practice.HintDismiss()),
	)

	sess, err := eng.StartSession(engine.StartConfig{
		PartnerID:     "cli",
		PartnerName:   practicePartner,
		SkillID:       practiceSkill,
		Scenario:      scenario,
		Goals:         practiceGoals,
		CoachingLevel: engine.CoachingLevel(practiceCoaching),
	})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	fmt.Printf("practicing %s with %s\n", sess.SkillName, sess.PartnerName)
	if scenario != "" {
		fmt.Printf("scenario: %s\n", scenario)
	}
	for _, g := range sess.Goals {
		fmt.Printf("goal [%s]: %s\n", g.ID, g.Description)
	}
	fmt.Println()
	printNewMessages(sess, 0)
	printHints(eng)

	seen := len(sess.Messages)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			eng.Discard()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			done, err := runPracticeCommand(eng, line)
			if err != nil {
				fmt.Println(err)
			}
			if done {
				return nil
			}
			continue
		}

		if err := eng.AddUserMessage(line); err != nil {
			fmt.Println(err)
			continue
		}

		// Wait out the typing delay, then show what arrived.
		time.Sleep(cfg.Practice.TypingDelay() + 250*time.Millisecond)
		if snap, ok := eng.Snapshot(); ok {
			printNewMessages(snap, seen)
			seen = len(snap.Messages)
		}
		printHints(eng)
	}
}

// runPracticeCommand handles a slash command. The bool result reports
// whether the session is over and the loop should exit.
func runPracticeCommand(eng *engine.Engine, line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/hints":
		printHints(eng)
	case "/goal":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /goal N")
		}
		eng.ToggleGoalCompleted("goal_" + fields[1])
	case "/technique":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /technique T")
		}
		eng.MarkTechniqueUsed(strings.Join(fields[1:], " "))
	case "/pause":
		return false, eng.PauseSession()
	case "/resume":
		return false, eng.ResumeSession()
	case "/end":
		sess, err := eng.EndSession()
		if err != nil {
			return false, err
		}
		printInsights(sess)
	case "/save":
		if err := eng.SaveSession(); err != nil {
			return false, err
		}
		fmt.Println("session saved")
		return true, nil
	case "/quit":
		eng.Discard()
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}
	return false, nil
}

func printNewMessages(sess *engine.Session, seen int) {
	for _, m := range sess.Messages[seen:] {
		if m.Role != engine.RolePartner {
			continue
		}
		if m.EmotionalTone != "" {
			fmt.Printf("%s [%s]: %s\n", sess.PartnerName, m.EmotionalTone, m.Content)
		} else {
			fmt.Printf("%s: %s\n", sess.PartnerName, m.Content)
		}
	}
}

func printHints(eng *engine.Engine) {
	for _, h := range eng.ActiveHints() {
		fmt.Printf("  hint (%s): %s\n", h.Kind, h.Content)
	}
}

func printInsights(sess *engine.Session) {
	in := sess.Insights
	if in == nil {
		return
	}
	fmt.Printf("\nsession over: score %d/100 (%ds)\n", in.OverallScore, sess.DurationSeconds)
	for _, h := range in.Highlights {
		fmt.Printf("  + %s\n", h)
	}
	for _, g := range in.GrowthAreas {
		fmt.Printf("  ~ %s\n", g)
	}
	for _, m := range in.KeyMoments {
		fmt.Printf("  * %s (%s)\n", m.Description, m.Kind)
	}
	fmt.Println("use /save to keep this session, /quit to discard")
}
