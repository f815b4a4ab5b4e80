package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shaiso/Conveyor/internal/domain"
)

// Output управляет форматированием вывода CLI.
type Output struct {
	jsonMode bool
	w        io.Writer // stdout для данных
	errW     io.Writer // stderr для сообщений
}

// NewOutput создаёт Output. Если jsonMode=true, данные выводятся в JSON.
func NewOutput(jsonMode bool) *Output {
	return &Output{
		jsonMode: jsonMode,
		w:        os.Stdout,
		errW:     os.Stderr,
	}
}

// PrintRun выводит итог run: таблицу по tracks/stages или JSON.
func (o *Output) PrintRun(run *domain.Run) {
	if o.jsonMode {
		o.JSON(run)
		return
	}

	headers := []string{"TRACK", "NODE", "STAGE", "STATUS", "DURATION"}
	var rows [][]string
	for i := range run.Tracks {
		track := &run.Tracks[i]
		for j := range track.Stages {
			stage := &track.Stages[j]
			rows = append(rows, []string{
				track.Name,
				track.Node,
				stage.Name,
				string(stage.Status),
				formatDuration(stage.Duration()),
			})
		}
	}
	o.Table(headers, rows)

	fmt.Fprintf(o.errW, "\nRun %s: %s", run.ID, run.Status)
	if run.Error != "" {
		fmt.Fprintf(o.errW, " (%s)", run.Error)
	}
	fmt.Fprintln(o.errW)
}

// Table выводит данные в виде таблицы через tabwriter.
func (o *Output) Table(headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)

	// Заголовки
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	// Разделитель
	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	// Строки данных
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	tw.Flush()
}

// JSON выводит данные в формате JSON с отступами.
func (o *Output) JSON(v any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// Success выводит сообщение об успехе в stderr.
func (o *Output) Success(msg string) {
	fmt.Fprintln(o.errW, msg)
}

// Error выводит сообщение об ошибке в stderr.
func (o *Output) Error(msg string) {
	fmt.Fprintln(o.errW, "Error: "+msg)
}

// formatDuration округляет длительность для табличного вывода.
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}
