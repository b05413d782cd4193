package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/vvka-141/inetl/pkg/inetl"
)

// RenderRunSummary formats the outcome of a run for a human reader.
// runErr is the error returned with the result, if any.
func RenderRunSummary(p Palette, config inetl.RunConfig, result *inetl.RunResult, runErr error) string {
	var b strings.Builder

	if result == nil {
		result = &inetl.RunResult{State: inetl.StateFailed}
	}

	id := shortID(result)
	if runErr == nil {
		b.WriteString(p.Success.Render(SymbolCheck + " Run " + id + " completed"))
	} else {
		stage := result.FailedStage
		if stage == "" {
			stage = inetl.StageOf(runErr)
		}
		b.WriteString(p.Error.Render(fmt.Sprintf("%s Run %s failed in %s stage", SymbolCross, id, stage)))
	}
	b.WriteString(p.Muted.Render(fmt.Sprintf(" (%s)", result.Duration.Round(time.Millisecond))))
	b.WriteString("\n")

	line := func(label, value string) {
		b.WriteString("  ")
		b.WriteString(p.Label.Render(label))
		b.WriteString(p.Value.Render(value))
		b.WriteString("\n")
	}

	line("Source", fmt.Sprintf("%s (%d row(s))", config.SourcePath, result.ExtractedRows))
	line("Transformed", fmt.Sprintf("%d row(s), year policy %s", result.TransformedRows, config.YearPolicy))

	if result.Load.ArtifactChecksum != "" {
		line("File", fmt.Sprintf("%s (sha256 %s)", config.OutputPath, shortSum(result.Load.ArtifactChecksum)))
	} else {
		line("File", config.OutputPath+" "+p.Muted.Render("(not written)"))
	}

	if result.State == inetl.StateDone || result.Load.TableRows > 0 {
		line("Table", fmt.Sprintf("%s (%d row(s), %s)", config.TableName, result.Load.TableRows, config.Connection.Driver))
	} else {
		line("Table", config.TableName+" "+p.Muted.Render("(unchanged)"))
	}

	if runErr != nil {
		line("Error", p.Error.Render(runErr.Error()))
	}

	return b.String()
}

func shortID(result *inetl.RunResult) string {
	s := result.RunID.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

func shortSum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
