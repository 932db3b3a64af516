package mypublisher

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/userarea/lib/myevents"
	"github.com/MarcGrol/userarea/lib/mytime"
)

type enveloper struct {
	nower mytime.Nower
}

func newEnveloper(nower mytime.Nower) enveloper {
	return enveloper{
		nower: nower,
	}
}

// wrap puts the event in an envelope whose UID is derived from its content,
// so publishing the same event twice (a repeated callback) stores it once
func (e enveloper) wrap(topic string, event myevents.Event) (myevents.EventEnvelope, error) {
	if event.GetAggregateName() == "" {
		return myevents.EventEnvelope{}, fmt.Errorf("event %s has no aggregate", event.GetEventTypeName())
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return myevents.EventEnvelope{}, fmt.Errorf("error marshalling event %s: %s", event.GetEventTypeName(), err)
	}

	envelope := myevents.EventEnvelope{
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
		CreatedAt:     e.nower.Now(),
		Published:     false,
	}
	envelope.UID = contentHash(envelope)

	return envelope, nil
}

// contentHash leaves CreatedAt out
func contentHash(envlp myevents.EventEnvelope) string {
	h := sha256.New()
	for _, part := range []string{envlp.Topic, envlp.EventTypeName, envlp.AggregateUID, envlp.EventPayload} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
