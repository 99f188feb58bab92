package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"homerange/domain/stats"
	"homerange/ports"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(w io.Writer, report *stats.AnalysisReport) {
	fmt.Fprintf(w, "Report %s\n", report.ID)
	if report.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", report.Source)
	}
	fmt.Fprintf(w, "Records: %d (dataset %s)\n", report.Records, report.DatasetHash.Short())
	fmt.Fprintf(w, "Seed: %d\n\n", report.Settings.Seed)

	printSummaries(w, report.Summaries)
	fmt.Fprintln(w)
	printBootstraps(w, report.Bootstraps)
	fmt.Fprintln(w)
	printPermutation(w, &report.Permutation)
	fmt.Fprintln(w)
	if report.TTest != nil {
		printTTest(w, report.TTest)
	} else {
		fmt.Fprintf(w, "t-test: not available (%s)\n", report.TTestError)
	}
}

func printSummaries(w io.Writer, summaries []stats.GroupSummary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "group\tn\tmean\tsd\tse\tmin\tq25\tmedian\tq75\tmax\t")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
			s.Group, s.N, s.Mean, s.StdDev, s.StdError, s.Min, s.Q25, s.Median, s.Q75, s.Max)
	}
	tw.Flush()
}

func printBootstraps(w io.Writer, results []stats.BootstrapResult) {
	for _, r := range results {
		fmt.Fprintf(w, "Bootstrap %s (R=%d): mean %.4f, SE %.4f\n", r.Group, r.Replicates, r.PointEstimate, r.StdError)
		fmt.Fprintf(w, "  %.0f%% percentile CI:     [%.4f, %.4f]\n", r.PercentileCI.Level*100, r.PercentileCI.Lower, r.PercentileCI.Upper)
		fmt.Fprintf(w, "  %.0f%% standard-error CI: [%.4f, %.4f]\n", r.StdErrorCI.Level*100, r.StdErrorCI.Lower, r.StdErrorCI.Upper)
	}
}

func printPermutation(w io.Writer, r *stats.PermutationResult) {
	fmt.Fprintf(w, "Permutation test (P=%d): mean(%s) - mean(%s) = %.4f, two-sided p = %.4f\n",
		r.Replicates, r.GroupA, r.GroupB, r.Observed, r.PValue)
}

func printTTest(w io.Writer, r *stats.TTestResult) {
	fmt.Fprintf(w, "Pooled t-test: mean(%s) = %.4f, mean(%s) = %.4f\n", r.GroupA, r.MeanA, r.GroupB, r.MeanB)
	fmt.Fprintf(w, "  t = %.4f, df = %d, p = %.4f (pooled variance %.4f)\n", r.TStatistic, r.DegreesFreedom, r.PValue, r.PooledVariance)
}

func printReportList(w io.Writer, summaries []ports.ReportSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No reports stored")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tSEED\tP")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.4f\n", s.ID, s.CreatedAt, s.Source, s.Seed, s.PValue)
	}
	tw.Flush()
}
