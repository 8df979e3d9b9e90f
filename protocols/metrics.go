package protocols

type MetricsRecorder interface {
	RecordTransition(transition string, err error)
	RecordAvailabilityCheck(available bool)
}
