// Package service provides the business logic layer for the rover mission server.
//
// MissionService is the main interface. It sits between the transports
// (HTTP, WebSocket, MCP) and the engine and gives every session its own
// plateau controller. SessionManager stores sessions and ConfigManager loads
// mission files.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	missionService := service.NewMissionService(sessionMgr, configMgr)
//
//	info, err := missionService.CreatePlateau(ctx, 5, 5)
//	if err != nil {
//		log.Fatal(err)
//	}
//	missionService.DeployRover(ctx, info.ID, 1, 2, "N")
//	result, err := missionService.ExecuteCommands(ctx, info.ID, 0, "LMLMLMLMM")
//
// All rover operations are serialized: only one rover moves at a time across
// the whole service.
package service
