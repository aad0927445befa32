/*
Package hub wires the ports of several components together.

A Hub is a concurrent registry of named port collections. Components register
their collections (or themselves, if they implement collection.IPortProvider)
and are then connected by component and port name:

	h := hub.New()
	_ = h.Register("sensor", sensorPorts)
	_ = h.Register("display", displayPorts)

	// display/value reads what sensor/value writes
	if err := h.ConnectPath("display/value", "sensor/value"); err != nil {
		...
	}

Connect makes the destination port adopt the storage of the source port, so the
same rules as for port.BindCommons.BindTo apply. A missing destination results
in port.ErrNotFound, a missing source in port.ErrOtherNotFound.

Registration is safe for concurrent use. The collections themselves follow the
thread safety rules of package collection.
*/
package hub
