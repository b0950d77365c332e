package counter

import (
	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
)

// Callback builds the Reply worker handler a counter service binds on
// the backend Dealer address of a service.ProxyService, dispatching
// CounterRequest{Item, Operation} -> CounterResponse{Value, ReturnCode}.
func Callback(store *Store) func(typeName string, payload []byte) message.Message {
	return func(typeName string, payload []byte) message.Message {
		var request message.CounterRequest
		if request.TypeName() != typeName {
			return &message.CounterResponse{ReturnCode: message.InvalidMessage}
		}
		if err := request.FromWire(payload); err != nil {
			return &message.CounterResponse{ReturnCode: message.InvalidMessage}
		}

		var (
			value int64
			err   error
		)
		switch request.Operation {
		case message.GetNextValue:
			value, err = store.GetNextValue(request.Item)
		case message.GetCurrentValue:
			value, err = store.GetCurrentValue(request.Item)
		case message.ResetCounter:
			value, err = store.Reset(request.Item)
		default:
			return &message.CounterResponse{ReturnCode: message.InvalidMessage}
		}

		if errors.Is(err, ErrUnknownItem) {
			return &message.CounterResponse{ReturnCode: message.NotFound}
		}
		if err != nil {
			return message.NewFailure(err)
		}
		return &message.CounterResponse{Value: value, ReturnCode: message.Success}
	}
}
