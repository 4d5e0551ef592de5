package vm

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Client is a Victoria Metrics client capable of inserting run diagnostics
// via various protocols.
type Client struct {
	logger       *slog.Logger
	httpCli      *http.Client
	insertURL    string
	metricPrefix string
	recToText    recToTextFunc
}

const metricPrefixRE = "^[a-zA-Z0-9]+$"

// NewClient creates a new VM client.
func NewClient(logger *slog.Logger, insertURL string, metricPrefix string) (*Client, error) {
	url, err := url.Parse(insertURL)
	if err != nil {
		return nil, err
	}

	matches, err := regexp.Match(metricPrefixRE, []byte(metricPrefix))
	if err != nil {
		return nil, err
	}
	if !matches {
		return nil, fmt.Errorf("metric prefix %q does not match %q regular expression", metricPrefix, metricPrefixRE)
	}

	apiParams := apiParamsFuncs[url.Path]
	if apiParams == nil {
		return nil, fmt.Errorf("inserting into %q is not supported", insertURL)
	}
	q := url.Query()
	for name, value := range apiParams(metricPrefix) {
		q.Add(name, value)
	}
	url.RawQuery = q.Encode()

	recToText := recToTextFuncs[url.Path]
	if recToText == nil {
		return nil, fmt.Errorf("inserting into %q is not supported", insertURL)
	}

	return &Client{
		logger: logger,
		httpCli: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		insertURL:    url.String(),
		metricPrefix: metricPrefix,
		recToText:    recToText,
	}, nil
}

// Insert inserts diagnostics records into Victoria Metrics.
func (c *Client) Insert(recs []Record) error {
	res, err := c.httpCli.Post(c.insertURL, "text/plain", recsToText(recs, c.metricPrefix, c.recToText))
	if err != nil {
		return fmt.Errorf("could not post data: %w", err)
	}
	defer res.Body.Close()
	if _, err := io.Copy(io.Discard, res.Body); err != nil {
		c.logger.Error("Failed to drain response body", "err", err)
	}
	if res.StatusCode != http.StatusNoContent && res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	c.logger.Debug("inserted diagnostics", "url", c.insertURL, "recs", len(recs))
	return nil
}

type apiParamsFunc func(string) map[string]string

var apiParamsFuncs = map[string]apiParamsFunc{
	"/influx/write":        influxDBAPIParams,
	"/influx/api/v2/write": influxDBAPIParams,
	"/write":               influxDBAPIParams,
	"/api/v2/write":        influxDBAPIParams,
	"/api/v1/import/csv":   csvAPIParams,
}

func influxDBAPIParams(metricPrefix string) map[string]string {
	return nil
}

func csvAPIParams(metricPrefix string) map[string]string {
	return map[string]string{
		"format": fmt.Sprintf(""+
			"1:time:unix_ms,"+
			"2:label:run,"+
			"3:label:nx,"+
			"4:label:ny,"+
			"5:metric:%[1]s_psi0,"+
			"6:metric:%[1]s_adv_cfl,"+
			"7:metric:%[1]s_grav_cfl,"+
			"8:metric:%[1]s_dt_rec", metricPrefix),
	}
}

type recToTextFunc func(*strings.Builder, *Record, string)

// recsToText converts multiple records to text.
func recsToText(recs []Record, metricPrefix string, recToText recToTextFunc) io.Reader {
	var sb strings.Builder
	for _, r := range recs {
		recToText(&sb, &r, metricPrefix)
		sb.WriteString("\n")
	}
	return strings.NewReader(sb.String())
}

var recToTextFuncs = map[string]recToTextFunc{
	"/influx/write":        recToInfluxDB,
	"/influx/api/v2/write": recToInfluxDB,
	"/write":               recToInfluxDB,
	"/api/v2/write":        recToInfluxDB,
	"/api/v1/import/csv":   recToCSV,
}

// recToInfluxDB converts a record into InfluxDB line protocol v2 and
// appends it to the string builder. Non-finite values are left out since
// the protocol cannot carry them.
func recToInfluxDB(sb *strings.Builder, r *Record, metricPrefix string) {
	fmt.Fprintf(sb, "%s,run=%s,nx=%d,ny=%d ", metricPrefix, escapeTag(r.Run), r.NX, r.NY)
	sep := ""
	for _, f := range fields(r) {
		if !finite(f.value) {
			continue
		}
		sb.WriteString(sep)
		sb.WriteString(f.name)
		sb.WriteString("=")
		sb.WriteString(strconv.FormatFloat(f.value, 'g', -1, 64))
		sep = ","
	}
	fmt.Fprintf(sb, " %d", r.Timestamp*int64(time.Millisecond))
}

// recToCSV converts a record into a CSV record and appends it to the string
// builder. Non-finite values become empty columns.
func recToCSV(sb *strings.Builder, r *Record, _ string) {
	fmt.Fprintf(sb, "%d,%s,%d,%d", r.Timestamp, strings.ReplaceAll(r.Run, ",", "_"), r.NX, r.NY)
	for _, f := range fields(r) {
		sb.WriteString(",")
		if finite(f.value) {
			sb.WriteString(strconv.FormatFloat(f.value, 'g', -1, 64))
		}
	}
}

type field struct {
	name  string
	value float64
}

func fields(r *Record) []field {
	return []field{
		{"psi0", r.Psi0},
		{"adv_cfl", r.AdvectiveCFL},
		{"grav_cfl", r.GravityWaveCFL},
		{"dt_rec", r.RecommendedDt},
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

var tagEscaper = strings.NewReplacer(",", `\,`, "=", `\=`, " ", `\ `)

func escapeTag(s string) string {
	if s == "" {
		return "none"
	}
	return tagEscaper.Replace(s)
}
