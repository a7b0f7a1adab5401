package domain

type FetchStatus int

const (
	// FetchStatusMatched means at least one diagnostic setting matched.
	FetchStatusMatched FetchStatus = iota
	// FetchStatusEmpty means settings were fetched but none matched.
	FetchStatusEmpty
	// FetchStatusError means the settings could not be fetched.
	FetchStatusError
)

func (s FetchStatus) String() string {
	switch s {
	case FetchStatusMatched:
		return "matched"
	case FetchStatusEmpty:
		return "empty"
	case FetchStatusError:
		return "fetch_error"
	}
	return "unknown"
}

type ResourceAudit struct {
	Resource Resource
	Status   FetchStatus
	Settings []DiagnosticSetting
	Err      error
}

func (a ResourceAudit) LoggingEnabled() bool {
	return a.Status == FetchStatusMatched
}

// AuditResult holds the matching diagnostic settings of every audited
// resource of one subscription, keyed by resource ID. Entries keep the order
// they were added in.
type AuditResult struct {
	order   []string
	entries map[string]ResourceAudit
}

func NewAuditResult() *AuditResult {
	return &AuditResult{entries: make(map[string]ResourceAudit)}
}

// Add records the audit of a resource. A second audit for the same resource
// ID replaces the first and keeps its position.
func (r *AuditResult) Add(audit ResourceAudit) {
	id := audit.Resource.ID
	if _, exists := r.entries[id]; !exists {
		r.order = append(r.order, id)
	}
	r.entries[id] = audit
}

func (r *AuditResult) Get(resourceID string) (ResourceAudit, bool) {
	audit, ok := r.entries[resourceID]
	return audit, ok
}

func (r *AuditResult) Entries() []ResourceAudit {
	entries := make([]ResourceAudit, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, r.entries[id])
	}
	return entries
}

func (r *AuditResult) Len() int {
	return len(r.order)
}

func (r *AuditResult) EnabledCount() int {
	count := 0
	for _, audit := range r.entries {
		if audit.LoggingEnabled() {
			count++
		}
	}
	return count
}

func (r *AuditResult) FailedCount() int {
	count := 0
	for _, audit := range r.entries {
		if audit.Status == FetchStatusError {
			count++
		}
	}
	return count
}
