package bench

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/ykhdr/crack-hash/internal/report"
)

// Row is the result of one benchmark case.
type Row struct {
	Id         string    `json:"_id"`
	RunId      string    `json:"run_id"`
	Algorithm  string    `json:"algorithm"`
	Level      string    `json:"level"`
	TargetHash string    `json:"target_hash"`
	Charset    string    `json:"charset"`
	Min        int       `json:"min"`
	Max        int       `json:"max"`
	Found      bool      `json:"found"`
	Password   string    `json:"password"`
	Attempts   int64     `json:"attempts"`
	Elapsed    float64   `json:"elapsed"`
	Hps        float64   `json:"hps"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewRow(runId uuid.UUID, c Case, parsed report.Parsed, finishedAt time.Time) Row {
	p := c.Preset()
	return Row{
		Id:         uuid.NewString(),
		RunId:      runId.String(),
		Algorithm:  c.Algorithm.String(),
		Level:      string(c.Level),
		TargetHash: c.Target,
		Charset:    p.Charset,
		Min:        p.Min,
		Max:        p.Max,
		Found:      parsed.Found,
		Password:   parsed.Plaintext,
		Attempts:   parsed.Attempts,
		Elapsed:    parsed.Elapsed,
		Hps:        parsed.Throughput,
		FinishedAt: finishedAt,
	}
}

var Columns = []string{
	"algorithm", "level", "target_hash", "charset", "min", "max",
	"found", "password", "attempts", "elapsed", "hps",
}

// Record renders the row in Columns order.
func (r Row) Record() []string {
	return []string{
		r.Algorithm,
		r.Level,
		r.TargetHash,
		r.Charset,
		strconv.Itoa(r.Min),
		strconv.Itoa(r.Max),
		strconv.FormatBool(r.Found),
		r.Password,
		strconv.FormatInt(r.Attempts, 10),
		strconv.FormatFloat(r.Elapsed, 'f', -1, 64),
		strconv.FormatFloat(r.Hps, 'f', -1, 64),
	}
}
