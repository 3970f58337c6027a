package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bookingcal/internal/app"
	"bookingcal/internal/booking"
	"bookingcal/internal/config"
	"bookingcal/internal/domain"
	"bookingcal/internal/scraper"
)

func newLinkCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "link <booking-url>",
		Short: "Print the Google Calendar link for a booking page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			log := newLogger(cfg, os.Stderr)

			svc := app.NewService(app.Options{
				Scraper:     scraper.NewRodScraper(log, cfg.BrowserBin, cfg.Selectors.Ready, cfg.ReadyTimeout),
				Synthesizer: booking.NewSynthesizer(loc, cfg.EventDurationMinutes),
				Selectors:   cfg.Selectors,
			}, log)

			decide := promptDecider(cmd.InOrStdin(), cmd.ErrOrStderr())
			if yes {
				decide = nil
			}
			link, err := svc.Link(cmd.Context(), args[0], decide)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// promptDecider shows the event on out and reads a y/N answer from in.
func promptDecider(in io.Reader, out io.Writer) booking.Decider {
	reader := bufio.NewReader(in)
	return func(ev domain.Event) bool {
		fmt.Fprintf(out, "제목: %s\n", ev.Title)
		if ev.BookedText != "" {
			fmt.Fprintf(out, "일시: %s\n", ev.BookedText)
		}
		if ev.Location != "" {
			fmt.Fprintf(out, "장소: %s\n", ev.Location)
		}
		fmt.Fprint(out, "Google 캘린더에 추가할까요? [y/N] ")

		answer, _ := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}
