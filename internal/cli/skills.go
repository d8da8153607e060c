package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietroom/rehearse/internal/skills"
)

var skillsRelationship string

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List practicable communication skills",
	Run:   runSkills,
}

func init() {
	skillsCmd.Flags().StringVar(&skillsRelationship, "relationship", "", "filter to skills recommended for a relationship type (romantic, family, friend, colleague, other)")
}

func runSkills(cmd *cobra.Command, args []string) {
	list := skills.All()
	if skillsRelationship != "" {
		list = skills.Recommended(skillsRelationship)
	}

	for _, sk := range list {
		fmt.Printf("%s  %s (difficulty %d, lens: %s)\n", sk.ID, sk.Name, sk.Difficulty, sk.Lens)
		fmt.Printf("    %s\n", sk.Description)
		fmt.Printf("    techniques: %s\n", strings.Join(sk.KeyTechniques, "; "))
	}
}
