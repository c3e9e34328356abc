package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	apiFlag     string
	timeoutFlag time.Duration
	rootCmd     = &cobra.Command{
		Use:   "matchctl",
		Short: "CLI client for the match service REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Match service base URL")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(newMatchCmd(), newMentorsCmd(), newProfilesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match USER_ID",
		Short: "Find the best matches for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd.Context(), newClient(apiFlag, timeoutFlag), args[0], cmd.OutOrStdout())
		},
	}
}

func newMentorsCmd() *cobra.Command {
	var q mentorQuery
	cmd := &cobra.Command{
		Use:   "mentors",
		Short: "Browse the mentor directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMentors(cmd.Context(), newClient(apiFlag, timeoutFlag), q, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&q.Page, "page", "p", 1, "Page number")
	cmd.Flags().IntVarP(&q.Limit, "limit", "l", 0, "Page size (server default when 0)")
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "Free-text search over name, company and title")
	cmd.Flags().StringVar(&q.State, "state", "", "State, exact match")
	cmd.Flags().StringVar(&q.Company, "company", "", "Company substring")
	cmd.Flags().StringVar(&q.JobTitle, "job-title", "", "Job title substring")
	cmd.Flags().StringVar(&q.Years, "years", "", "Years of experience bucket (0-2, 3-5, 6-10, 10+)")
	cmd.Flags().StringVar(&q.Email, "email", "", "Email presence (required, excluded)")
	cmd.Flags().StringVar(&q.Session, "session", "", "Browsing session id to keep a stable order")
	cmd.Flags().BoolVar(&q.Reset, "reset", false, "Reshuffle the session")
	return cmd
}

func newProfilesCmd() *cobra.Command {
	profilesCmd := &cobra.Command{Use: "profiles", Short: "Profile operations"}

	profilesCmd.AddCommand(&cobra.Command{
		Use:   "get USER_ID",
		Short: "Get a profile by user id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileGet(cmd.Context(), newClient(apiFlag, timeoutFlag), args[0], cmd.OutOrStdout())
		},
	})

	profilesCmd.AddCommand(&cobra.Command{
		Use:   "import FILE",
		Short: "Upsert every profile in a JSON array file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			return runProfileImport(cmd.Context(), newClient(apiFlag, timeoutFlag), f, cmd.OutOrStdout())
		},
	})
	return profilesCmd
}
