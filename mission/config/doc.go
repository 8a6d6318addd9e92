// Package config loads rover missions from a directory.
//
// A mission names a plateau and a list of rover deployments, each with the
// command string it runs. Missions are stored either as JSON:
//
//	{
//	  "name": "kata",
//	  "plateau": {"width": 5, "height": 5},
//	  "rovers": [{"x": 1, "y": 2, "facing": "N", "commands": "LMLMLMLMM"}]
//	}
//
// or as HCL, with one rover block per deployment:
//
//	name = "kata"
//	plateau {
//	  width  = 5
//	  height = 5
//	}
//	rover {
//	  x        = 1
//	  y        = 2
//	  facing   = "N"
//	  commands = "LMLMLMLMM"
//	}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	mission, err := manager.LoadConfig("kata")
//
// Every mission is validated on load: positive plateau bounds, known facing
// letters and rovers that start on the plateau. Unknown command letters are
// allowed; they abort that rover's commands when the mission runs.
package config
