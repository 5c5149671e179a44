package telemetry

import "sync"

type ReportLevel int

const (
	LEVEL_BROKEN ReportLevel = iota
	LEVEL_WARNING
	LEVEL_DEBUG
	LEVEL_COUNT
)

type Report struct {
	Level  ReportLevel
	Id     string
	Params []any
	Count  int64
}

// Recorder implements API by keeping every report in memory, it is meant for tests.
type Recorder struct {
	mutex   sync.Mutex
	reports []Report
}

func (r *Recorder) add(report Report) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.reports = append(r.reports, report)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.add(Report{Level: LEVEL_BROKEN, Id: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.add(Report{Level: LEVEL_WARNING, Id: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.add(Report{Level: LEVEL_DEBUG, Id: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.add(Report{Level: LEVEL_COUNT, Id: id, Count: count})
}

// Reports returns a copy of the reports recorded so far.
func (r *Recorder) Reports() []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Broken returns the ids of all the broken components reported so far.
func (r *Recorder) Broken() []string {
	var ids []string
	for _, report := range r.Reports() {
		if report.Level == LEVEL_BROKEN {
			ids = append(ids, report.Id)
		}
	}
	return ids
}
