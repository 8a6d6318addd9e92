// Package websocket pushes plateau updates to browser clients.
//
// A central Hub tracks clients per session. Clients connect to
// /ws?session=<id>; every REST or MCP call that changes a plateau results in
// a state_update message carrying the full PlateauState, followed by a
// rover_deployed or commands_executed event with the call's result.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	hub.BroadcastToSession(sessionID, state)
//	hub.BroadcastEvent(sessionID, websocket.EventCommandsExecuted, result)
package websocket
