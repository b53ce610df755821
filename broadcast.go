package main

// Broadcast delivers message to every client currently assigned to room.
// The occupant list is snapshotted under the registry lock, but the writes
// happen outside it, so one stalled reader cannot block the whole registry.
// A sink that fails to accept the write is treated as an already-gone peer:
// it is unregistered and delivery to the rest continues.
func (r *Registry) Broadcast(room int, message string) {
	for _, occupant := range r.OccupantsOf(room) {
		if err := occupant.Sink.WriteLine(message); err != nil {
			r.Unregister(occupant.Nickname)
			LogPeerDropped(occupant.Nickname, err)
		}
	}
	messagesBroadcast.Inc()
}
