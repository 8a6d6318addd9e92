// Package session provides session management for the rover mission server.
//
// A session owns one plateau controller together with the mission it was
// created from and the output lines that mission produced. Sessions live in
// memory only and are identified by 4-character hex IDs, matched
// case-insensitively.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", engine.DefaultMission())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(sess.Output) // [1 3 N 5 1 E]
//
//	blank, _ := manager.CreateBlank("", 10, 10)
//	blank.Controller.Deploy(0, 0, engine.North)
//
// The manager is safe for concurrent use. Stale sessions can be dropped with
// CleanupExpiredSessions.
package session
