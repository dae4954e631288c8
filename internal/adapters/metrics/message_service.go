package metrics

import (
	"context"
	"geomedia/internal/core/port"
	"time"
)

type instrumentedMessageService struct {
	next port.MessageService
}

// InstrumentMessageService records outcome and duration of every handled message
func InstrumentMessageService(next port.MessageService) port.MessageService {
	return &instrumentedMessageService{next: next}
}

func (s *instrumentedMessageService) HandleMessage(ctx context.Context, data []byte) error {
	start := time.Now()
	err := s.next.HandleMessage(ctx, data)

	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	RecordProcessing(status, time.Since(start).Seconds())
	return err
}
