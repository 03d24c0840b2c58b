package checker

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/IliaW/bots-checker/internal/model"
	jsoniter "github.com/json-iterator/go"
)

var separator = strings.Repeat("-", 60)

// TextReporter prints one block per checked bot, or a single line when the probe failed.
func TextReporter(w io.Writer) ReportFunc {
	return func(result *model.ProbeResult) {
		if err := writeText(w, result); err != nil {
			slog.Error("failed to write report.", slog.String("err", err.Error()))
		}
	}
}

// JsonReporter prints one JSON object per line.
func JsonReporter(w io.Writer) ReportFunc {
	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	return func(result *model.ProbeResult) {
		if err := encoder.Encode(model.NewProbeResultView(result)); err != nil {
			slog.Error("failed to write report.", slog.String("err", err.Error()))
		}
	}
}

func writeText(w io.Writer, r *model.ProbeResult) error {
	if r.Failed() {
		_, err := fmt.Fprintf(w, "%s/%s: Error - %s, Robots.txt='%s'\n",
			r.Bot.Company, r.Bot.Name, r.Error, robotsLabel(r.RobotsAllowed))
		return err
	}

	verdict := "BLOCKED"
	if r.IsAllowed() {
		verdict = "Allowed"
	}
	_, err := fmt.Fprintf(w,
		"%s %s:\t%s\n"+
			"\tStatus Code:\t%d\n"+
			"\tRobots Meta:\t%s\n"+
			"\tRobots.txt:\t%s\n"+
			"\tTitle:\t\t%s\n"+
			"\tLoad Time:\t%.2fs\n"+
			"%s\n\n",
		r.Bot.Company, r.Bot.Name, verdict,
		r.StatusCode,
		r.RobotsMeta,
		robotsLabel(r.RobotsAllowed),
		r.Title,
		r.LoadTime.Seconds(),
		separator)
	return err
}

func robotsLabel(allowed bool) string {
	if allowed {
		return "Allowed"
	}
	return "Blocked"
}
