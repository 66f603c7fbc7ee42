package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/mikepea/yatube/pkg/yatube/groups"
	"github.com/spf13/cobra"
)

var (
	// Group flags
	groupTitle       string
	groupSlug        string
	groupDescription string
)

// groupCmd groups the group management subcommands
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a group",
	Long: `Create a group posts can be filed under.

Examples:
  yatube-server group create --title "Cats" --slug cats --description "All about cats"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		logger, db, err := setup(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		group, err := groups.NewService(db, logger).Create(cmd.Context(), groups.Input{
			Title:       groupTitle,
			Slug:        groupSlug,
			Description: groupDescription,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created group %s (id %d)\n", group.Slug, group.ID)
		return nil
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a group, keeping its posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		logger, db, err := setup(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		if err := groups.NewService(db, logger).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted group %s\n", args[0])
		return nil
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		logger, db, err := setup(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		list, err := groups.NewService(db, logger).List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSLUG\tTITLE")
		for _, group := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\n", group.ID, group.Slug, group.Title)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.AddCommand(groupCreateCmd, groupDeleteCmd, groupListCmd)

	groupCreateCmd.Flags().StringVar(&groupTitle, "title", "", "Group title")
	groupCreateCmd.Flags().StringVar(&groupSlug, "slug", "", "Group slug: letters, numbers, hyphens, underscores")
	groupCreateCmd.Flags().StringVar(&groupDescription, "description", "", "Group description")
	groupCreateCmd.MarkFlagRequired("title")
	groupCreateCmd.MarkFlagRequired("slug")
}
