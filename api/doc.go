// Package api provides the HTTP REST API for the rover mission server.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session from a mission ({"config_id": "kata"})
//     or an empty plateau ({"width": 5, "height": 5})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Plateau and rovers:
//   - GET /api/sessions/{id}/state - Plateau snapshot
//   - GET /api/sessions/{id}/geojson - Plateau, rovers and tracks as GeoJSON
//   - POST /api/sessions/{id}/rovers - Deploy a rover ({"x": 1, "y": 2, "facing": "N"})
//   - POST /api/sessions/{id}/commands - Drive the latest rover ({"commands": "LMLMLMLMM"})
//   - POST /api/sessions/{id}/rovers/{rover}/commands - Drive a specific rover
//   - GET /api/sessions/{id}/rovers/{rover}/history - Paginated command events
//
// Stream simulation:
//   - POST /api/simulate - Run a plain-text record stream and return its output
//
// Configuration:
//   - GET /api/configs - List mission files
//   - GET /api/configs/{name} - Get a mission
//   - POST /api/configs - Save a mission as JSON
//
// Other:
//   - GET /health
//   - GET /ws?session={id} - WebSocket plateau updates
//
// Errors are returned as {"error": "message"}. Rejected plateaus, placements
// and facing letters answer 422, missing sessions and rovers 404.
//
// Blocked moves and unknown command letters are not errors: the commands
// call answers 200 and the result lists the diagnostics ahead of the final
// "x y D" line.
package api
