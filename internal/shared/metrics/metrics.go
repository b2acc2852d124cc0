package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	documentsAnalyzedTotal atomic.Uint64
	analysisFailedTotal    atomic.Uint64
	questionsAnsweredTotal atomic.Uint64
	emailsSentTotal        atomic.Uint64
	emailsFailedTotal      atomic.Uint64

	pipelineDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncDocumentsAnalyzed increments the completed pipeline counter.
func IncDocumentsAnalyzed() {
	documentsAnalyzedTotal.Add(1)
}

// IncAnalysisFailed increments the failed pipeline counter.
func IncAnalysisFailed() {
	analysisFailedTotal.Add(1)
}

// IncQuestionsAnswered increments the answered question counter.
func IncQuestionsAnswered() {
	questionsAnsweredTotal.Add(1)
}

// IncEmailsSent increments the notification success counter.
func IncEmailsSent() {
	emailsSentTotal.Add(1)
}

// IncEmailsFailed increments the notification failure counter.
func IncEmailsFailed() {
	emailsFailedTotal.Add(1)
}

// ObservePipelineDurationMs records a full analysis pipeline duration in milliseconds.
func ObservePipelineDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	pipelineDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "documents_analyzed_total", "Total documents analyzed successfully", documentsAnalyzedTotal.Load())
	writeCounter(&buf, "analysis_failed_total", "Total analysis pipelines that failed", analysisFailedTotal.Load())
	writeCounter(&buf, "questions_answered_total", "Total document questions answered", questionsAnsweredTotal.Load())
	writeCounter(&buf, "emails_sent_total", "Total analysis report emails sent", emailsSentTotal.Load())
	writeCounter(&buf, "emails_failed_total", "Total analysis report emails that failed", emailsFailedTotal.Load())
	writeHistogram(&buf, "analysis_pipeline_duration_ms", "Analysis pipeline duration in milliseconds", pipelineDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
