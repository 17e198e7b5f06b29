package main

import (
	"context"

	"github.com/spf13/cobra"
)

var charactersCmd = &cobra.Command{
	Use:   "characters <anime-id>",
	Short: "List the characters and voice actors of an anime",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runCharacters),
}

func init() {
	rootCmd.AddCommand(charactersCmd)
}

func runCharacters(ctx context.Context, a *app, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	roles, err := a.client.GetAnimeCharacters(ctx, ids[0])
	if err != nil {
		return err
	}
	return a.render(roles, characterTable(roles))
}
