package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samvad-hq/hero-data-service/internal/domain"
	"github.com/spf13/cobra"
)

func newListCmd(root *cobra.Command, s *session) *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Args:  cobra.NoArgs,
		Short: "List every hero",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.print(cmd, s.client.Heroes.ListHeroes(cmd.Context()))
		},
	}
	root.AddCommand(c)
	return c
}

func newGetCmd(root *cobra.Command, s *session) *cobra.Command {
	c := &cobra.Command{
		Use:   "get ID",
		Args:  cobra.ExactArgs(1),
		Short: "Fetch one hero by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return s.print(cmd, s.client.Heroes.GetHero(cmd.Context(), id))
		},
	}
	root.AddCommand(c)
	return c
}

func newAddCmd(root *cobra.Command, s *session) *cobra.Command {
	c := &cobra.Command{
		Use:   "add NAME",
		Args:  cobra.MinimumNArgs(1),
		Short: "Create a hero; the server assigns the id",
		RunE: func(cmd *cobra.Command, args []string) error {
			hero := domain.Hero{Name: strings.Join(args, " ")}
			return s.print(cmd, s.client.Heroes.AddHero(cmd.Context(), hero))
		},
	}
	root.AddCommand(c)
	return c
}

func newUpdateCmd(root *cobra.Command, s *session) *cobra.Command {
	c := &cobra.Command{
		Use:   "update ID NAME",
		Args:  cobra.MinimumNArgs(2),
		Short: "Rename an existing hero",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			hero := domain.Hero{ID: id, Name: strings.Join(args[1:], " ")}
			return s.print(cmd, s.client.Heroes.UpdateHero(cmd.Context(), hero))
		},
	}
	root.AddCommand(c)
	return c
}

func newDeleteCmd(root *cobra.Command, s *session) *cobra.Command {
	c := &cobra.Command{
		Use:   "delete ID",
		Args:  cobra.ExactArgs(1),
		Short: "Delete a hero by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return s.print(cmd, s.client.Heroes.DeleteHero(cmd.Context(), domain.ID(id)))
		},
	}
	root.AddCommand(c)
	return c
}

func newSearchCmd(root *cobra.Command, s *session) *cobra.Command {
	c := &cobra.Command{
		Use:   "search TERM",
		Args:  cobra.ArbitraryArgs,
		Short: "Find heroes whose name contains TERM",
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")
			return s.print(cmd, s.client.Heroes.SearchHeroes(cmd.Context(), term))
		},
	}
	root.AddCommand(c)
	return c
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid hero id %q", raw)
	}
	return id, nil
}
