package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietroom/rehearse/internal/config"
	"github.com/quietroom/rehearse/internal/store"
)

var (
	historySkill string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved sessions and per-skill progress",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historySkill, "skill", "", "show sessions and progress for one skill")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "max sessions to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	var sessions []store.SavedSession
	if historySkill != "" {
		sessions, err = db.SessionsBySkill(historySkill)
	} else {
		sessions, err = db.RecentSessions(historyLimit)
	}
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("no saved sessions")
		return nil
	}

	for _, s := range sessions {
		started := time.UnixMilli(s.StartedAt).Format("2006-01-02 15:04")
		fmt.Printf("%s  %-24s score %3d  %ds with %s\n",
			started, s.SkillName, s.OverallScore, s.DurationSeconds, s.PartnerName)
	}

	if historySkill != "" {
		p, err := db.GetProgress(historySkill)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		if p != nil {
			fmt.Printf("\nprogress: %d sessions, average score %d\n", p.SessionsCompleted, p.AverageScore)
			if len(p.Techniques) > 0 {
				fmt.Printf("techniques used: %s\n", strings.Join(p.Techniques, "; "))
			}
		}
	}
	return nil
}
