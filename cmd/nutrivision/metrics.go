package nutrivision

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

var showMetrics bool

// writeMetrics dumps this process's nutrivision_* series in the Prometheus
// text format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "nutrivision_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "Print service call metrics to stderr when the command finishes")
	// Finalizers also run when the command returns an error.
	cobra.OnFinalize(func() {
		if !showMetrics {
			return
		}
		if err := writeMetrics(rootCmd.ErrOrStderr(), prometheus.DefaultGatherer); err != nil {
			fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		}
	})
}
