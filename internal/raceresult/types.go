package raceresult

import "encoding/json"

// ConfigDocument is the upstream configuration response for an event.
//
// Key is a per-session access key that must be sent with every subsequent
// list request. Contests maps contest-category ids to bilingual display
// labels. Numeric split fields arrive loosely typed (numbers, strings, or
// null depending on the event setup), so they are held as any and coerced
// downstream.
type ConfigDocument struct {
	Key       string            `json:"key"`
	EventName string            `json:"eventname"`
	Contests  map[string]string `json:"contests"`
	Splits    []ConfigSplit     `json:"splits"`
	Lists     []ListDescriptor  `json:"lists"`
}

// ConfigSplit is one split definition as delivered by the config endpoint.
type ConfigSplit struct {
	ID          any    `json:"ID"`
	Name        string `json:"Name"`
	Label       string `json:"Label"`
	SplitType   any    `json:"SplitType"`
	Contest     any    `json:"Contest"`
	TypeOfSport any    `json:"TypeOfSport"`
}

// ListDescriptor names one row list the event publishes.
type ListDescriptor struct {
	Name   string `json:"Name"`
	Mode   string `json:"Mode"`
	ShowAs string `json:"ShowAs"`
	Format string `json:"Format"`
}

// RowList maps a category key ("#<id>_<name>") to its ordered positional
// string rows. The meaning of each position depends on which list the rows
// came from; athlete and waitlist rows have different schemas.
type RowList map[string][][]string

// listResponse is the wire shape of the list endpoint.
type listResponse struct {
	Data RowList `json:"data"`
}

// Snapshot is the complete result of one fetch: the parsed documents plus
// the raw response bodies, kept so the audit trail records the run's exact
// inputs.
type Snapshot struct {
	Config    ConfigDocument
	ConfigRaw json.RawMessage
	Lists     map[string]RowList
	ListsRaw  map[string]json.RawMessage
}

// List returns the named row list and whether it was present in the fetch.
func (s *Snapshot) List(name string) (RowList, bool) {
	l, ok := s.Lists[name]
	return l, ok
}
