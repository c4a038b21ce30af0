package phys2d

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

type BodyState struct {
	ID              uint32  `msgpack:"id"`
	Position        Vector  `msgpack:"p"`
	Angle           float64 `msgpack:"a"`
	Velocity        Vector  `msgpack:"v"`
	AngularVelocity float64 `msgpack:"w"`
	Island          int     `msgpack:"island"`
}

type ContactState struct {
	Collider0 uint32  `msgpack:"c0"`
	Collider1 uint32  `msgpack:"c1"`
	Point     Vector  `msgpack:"p"`
	Normal    Vector  `msgpack:"n"`
	Depth     float64 `msgpack:"depth"`
	Impulse   float64 `msgpack:"impulse"`
}

// Snapshot is a serializable view of a World after a step.
type Snapshot struct {
	Step     uint64         `msgpack:"step"`
	Time     float64        `msgpack:"time"`
	Bodies   []BodyState    `msgpack:"bodies"`
	Contacts []ContactState `msgpack:"contacts"`
}

func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Step:     w.stamp,
		Time:     w.time,
		Bodies:   make([]BodyState, 0, len(w.bodies)),
		Contacts: make([]ContactState, 0, len(w.contacts)),
	}
	for i, body := range w.bodies {
		s.Bodies = append(s.Bodies, BodyState{
			ID:              body.id,
			Position:        body.p,
			Angle:           body.a,
			Velocity:        body.v,
			AngularVelocity: body.w,
			Island:          w.bodyIsland[i],
		})
	}
	for _, contact := range w.contacts {
		info := contact.info
		s.Contacts = append(s.Contacts, ContactState{
			Collider0: info.Collider0.id,
			Collider1: info.Collider1.id,
			Point:     info.Point0,
			Normal:    info.Normal,
			Depth:     info.Depth,
			Impulse:   contact.NormalImpulse(),
		})
	}
	return s
}

func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, errors.Wrap(err, "phys2d: encoding snapshot")
	}
	return data, nil
}

func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Snapshot{}, errors.Wrap(err, "phys2d: decoding snapshot")
	}
	return s, nil
}
