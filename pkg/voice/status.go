package voice

// Status is a read-only snapshot of the pipeline for dashboards and CLIs.
// The listening/processing fields are best-effort, eventually-consistent
// reads of state owned by the callback context, not linearizable views.
type Status struct {
	Listening             bool              `json:"listening"`
	Processing            bool              `json:"processing"`
	WakeDetectorAvailable bool              `json:"wake_detector_available"`
	TranscriberAvailable  bool              `json:"transcriber_available"`
	TranscriberInfo       map[string]string `json:"transcriber_info"`
	AvailableWakeWords    []string          `json:"available_wake_words"`
	DroppedTriggers       uint64            `json:"dropped_triggers"`
}

// Status returns the current pipeline snapshot.
func (p *Pipeline) Status() Status {
	s := Status{
		Listening:       p.listening.Load(),
		Processing:      p.processing.Load(),
		DroppedTriggers: p.dropped.Load(),
	}
	if p.wake != nil {
		s.WakeDetectorAvailable = true
		s.AvailableWakeWords = p.wake.AvailableModels()
	}
	if p.stt != nil {
		s.TranscriberAvailable = p.stt.IsAvailable()
		s.TranscriberInfo = p.stt.BackendInfo()
	}
	return s
}
