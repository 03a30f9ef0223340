package msg

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressBar is an io.Writer that renders a single-line progress bar for a
// download as the response body flows through it. A zero total (unknown
// Content-Length) shows the byte count alone.
type ProgressBar struct {
	total      int64
	current    int64
	w          io.Writer
	lastPrint  time.Time
	throbIndex int
}

var throbbers = []rune{'|', '/', '-', '\\'}

func NewProgressBar(total int64, w io.Writer) *ProgressBar {
	return &ProgressBar{
		total:     total,
		w:         w,
		lastPrint: time.Now(),
	}
}

func (pb *ProgressBar) Write(p []byte) (int, error) {
	n := len(p)
	pb.current += int64(n)

	if time.Since(pb.lastPrint) > 40*time.Millisecond {
		pb.print(false)
		pb.lastPrint = time.Now()
	}
	return n, nil
}

func megabytes(n int64) string {
	return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
}

func (pb *ProgressBar) print(finish bool) {
	throb := throbbers[pb.throbIndex%len(throbbers)]
	pb.throbIndex++
	if finish {
		throb = ' '
	}

	if pb.total <= 0 {
		fmt.Fprintf(pb.w, "\r    %s %c", megabytes(pb.current), throb)
		return
	}

	percent := float64(pb.current) / float64(pb.total)
	if finish {
		percent = 1
	}
	const width = 40
	filled := min(int(percent*width), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("-", width-filled)

	fmt.Fprintf(pb.w, "\r    %6.f%% [%s] %s of %s %c",
		percent*100,
		bar,
		megabytes(pb.current),
		megabytes(pb.total),
		throb,
	)
}

// Finish fills the bar up and terminates the line.
func (pb *ProgressBar) Finish() {
	pb.print(true)
	fmt.Fprintln(pb.w)
}
