package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/config"
	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/urfave/cli/v2"
)

func demoCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "register two sample tournaments, report matches and print standings",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "memory", Usage: "use in-memory storage instead of PostgreSQL"},
		},
		Action: func(c *cli.Context) error {
			cfg := &config.Config{StorageDriver: config.DriverMemory}
			if !c.Bool("memory") {
				var err error
				cfg, err = config.LoadDatabase(c.String("config"))
				if err != nil {
					return err
				}
				cfg.StorageDriver = config.DriverPostgres
			}
			repo, err := openRepository(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			defer repo.Close()
			return runDemo(c.Context, repo, c.App.Writer, logger)
		},
	}
}

type demoServices struct {
	registration services.RegistrationService
	matches      services.MatchService
	standings    services.StandingsService
	pairings     services.PairingService
}

func runDemo(ctx context.Context, repo repositories.Repository, out io.Writer, logger *slog.Logger) error {
	recorder := metrics.NewNoop()
	standings := services.NewStandingsService(repo, recorder, logger)
	svc := demoServices{
		registration: services.NewRegistrationService(repo, recorder, logger),
		matches:      services.NewMatchService(repo, standings, nil, recorder, logger),
		standings:    standings,
		pairings:     services.NewPairingService(repo, brackets.NewSwissGenerator(), recorder, logger),
	}

	t0, err := svc.registration.CreateTournament(ctx, services.CreateTournamentInput{Name: "t0"})
	if err != nil {
		return err
	}
	t1, err := svc.registration.CreateTournament(ctx, services.CreateTournamentInput{Name: "t1"})
	if err != nil {
		return err
	}

	entries := []services.CreatePlayerInput{
		{Name: "Bruno Walton", TournamentIDs: []int{t0.ID, t1.ID}},
		{Name: "Boots O'Neal", TournamentIDs: []int{t0.ID, t1.ID}},
		{Name: "Cathy Burton", TournamentIDs: []int{t0.ID, t1.ID}},
		{Name: "Diane Grant", TournamentIDs: []int{t0.ID, t1.ID}},
		{Name: "Lucy Himmel", TournamentIDs: []int{t0.ID}},
		{Name: "Reto Schweitzer"},
	}
	ids := make([]int, len(entries))
	for i, entry := range entries {
		player, err := svc.registration.CreatePlayer(ctx, entry)
		if err != nil {
			return err
		}
		ids[i] = player.ID
	}
	if err := svc.registration.Enroll(ctx, ids[5], t0.ID); err != nil {
		return err
	}
	fmt.Fprintf(out, "Registered players %v\n", ids)

	if err := svc.printStandings(ctx, out, t0); err != nil {
		return err
	}

	win := func(i int) *int { return &ids[i] }
	reports := []services.MatchReport{
		{TournamentID: t0.ID, PlayerAID: ids[0], PlayerBID: ids[1], WinnerID: win(0)},
		{TournamentID: t0.ID, PlayerAID: ids[2], PlayerBID: ids[3], WinnerID: win(2)},
		{TournamentID: t0.ID, PlayerAID: ids[4], PlayerBID: ids[5], WinnerID: win(4)},
		{TournamentID: t0.ID, PlayerAID: ids[0], PlayerBID: ids[3]},
		{TournamentID: t1.ID, PlayerAID: ids[0], PlayerBID: ids[1], WinnerID: win(0)},
		{TournamentID: t1.ID, PlayerAID: ids[2], PlayerBID: ids[3]},
	}
	for _, report := range reports {
		if _, err := svc.matches.ReportMatch(ctx, report); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Reported %d matches\n", len(reports))

	for _, t := range []*models.Tournament{t0, t1} {
		if err := svc.printStandings(ctx, out, t); err != nil {
			return err
		}
		if err := svc.printPairings(ctx, out, t); err != nil {
			return err
		}
	}
	return nil
}

func (s demoServices) printStandings(ctx context.Context, out io.Writer, t *models.Tournament) error {
	rows, err := s.standings.Standings(ctx, t.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nStandings of tournament %s\n", t.Name)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tWINS\tDRAWS\tPLAYED\tPOINTS")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\n", row.PlayerID, row.Name, row.Wins, row.Draws, row.MatchesPlayed, row.Points())
	}
	return tw.Flush()
}

func (s demoServices) printPairings(ctx context.Context, out io.Writer, t *models.Tournament) error {
	pairings, err := s.pairings.SwissPairings(ctx, t.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Next round of tournament %s\n", t.Name)
	for _, p := range pairings {
		fmt.Fprintf(out, "  %s vs %s\n", p.Player1Name, p.Player2Name)
	}
	return nil
}
