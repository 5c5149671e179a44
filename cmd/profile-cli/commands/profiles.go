package commands

import (
	"cpprofile-backend/internal/service"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(codechefCmd, leetcodeCmd, codeforcesCmd, allCmd)
}

var codechefCmd = &cobra.Command{
	Use:   "codechef <username>",
	Short: "Scrapes the codechef profile page of a user.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := svc.CodeChef(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJson(cmd.OutOrStdout(), result)
		}
		renderCodeChef(cmd.OutOrStdout(), result)
		return nil
	},
}

var leetcodeCmd = &cobra.Command{
	Use:   "leetcode <username>",
	Short: "Fetches the leetcode profile of a user.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := svc.LeetCode(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJson(cmd.OutOrStdout(), result)
		}
		return renderLeetCode(cmd.OutOrStdout(), result)
	},
}

var codeforcesCmd = &cobra.Command{
	Use:   "codeforces <handle>",
	Short: "Fetches the codeforces profile of a handle.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := svc.Codeforces(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJson(cmd.OutOrStdout(), result)
		}
		renderCodeforces(cmd.OutOrStdout(), result)
		return nil
	},
}

var allCmd = &cobra.Command{
	Use:   "all <codechef> <leetcode> <codeforces>",
	Short: "Fetches all three profiles concurrently, pass \"\" to skip a platform.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := svc.Aggregate(cmd.Context(), service.Usernames{
			CodeChef:   args[0],
			LeetCode:   args[1],
			Codeforces: args[2],
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJson(cmd.OutOrStdout(), result)
		}
		return renderAggregate(cmd.OutOrStdout(), result)
	},
}
