package extensions

import (
	"context"
	"errors"

	"github.com/Kotlang/eventsGo/db"
	"github.com/Kotlang/eventsGo/logger"
	"github.com/Kotlang/eventsGo/models"
	"go.uber.org/zap"
)

// EventInfo is an event with its owner and attendants expanded into users.
type EventInfo struct {
	Event      *models.EventModel
	Owner      *models.UserModel
	Attendants []models.UserModel
}

// AttachEventInfoAsync loads the owner and the attendants of event
// concurrently. The returned channel yields exactly one value.
func AttachEventInfoAsync(ctx context.Context, eventsDb db.EventsDbInterface, event *models.EventModel) (chan *EventInfo, chan error) {
	resultChan := make(chan *EventInfo, 1)
	errChan := make(chan error, 1)

	go func() {
		ownerChan := make(chan *models.UserModel, 1)
		attendantsChan := make(chan []models.UserModel, 1)
		lookupErrChan := make(chan error, 2)

		go func() {
			owner, err := eventsDb.User().FindById(ctx, event.Owner)
			if errors.Is(err, db.ErrNotFound) {
				// the owner account is gone; the event still renders.
				ownerChan <- nil
				return
			}
			if err != nil {
				lookupErrChan <- err
				return
			}
			ownerChan <- owner
		}()

		go func() {
			attendants, err := eventsDb.User().FindByIds(ctx, event.Attendants)
			if err != nil {
				lookupErrChan <- err
				return
			}
			attendantsChan <- attendants
		}()

		info := &EventInfo{Event: event}
		for i := 0; i < 2; i++ {
			select {
			case info.Owner = <-ownerChan:
			case info.Attendants = <-attendantsChan:
			case err := <-lookupErrChan:
				logger.Error("Failed attaching event info", zap.String("eventId", event.EventId.Hex()), zap.Error(err))
				errChan <- err
				return
			}
		}
		resultChan <- info
	}()

	return resultChan, errChan
}
