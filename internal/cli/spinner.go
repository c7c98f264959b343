package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/performance-dashboard/internal/loader"
	"github.com/Veraticus/performance-dashboard/internal/model"
)

// SpinnerReader shows a spinner while the wrapped reader fetches a sheet.
// Behind the loader cache it only spins on a miss.
type SpinnerReader struct {
	Reader loader.TableReader
	Writer io.Writer
}

// Read implements loader.TableReader.
func (s SpinnerReader) Read(ctx context.Context, documentURL, sheetName, credentialsFile string) (*model.Table, error) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(s.Writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription(fmt.Sprintf("[green]Loading sheet %q...[reset]", sheetName)),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	table, err := s.Reader.Read(ctx, documentURL, sheetName, credentialsFile)
	close(done)
	<-stopped
	if finishErr := bar.Finish(); finishErr != nil {
		slog.Debug("failed to finish spinner", "error", finishErr)
	}
	return table, err
}
