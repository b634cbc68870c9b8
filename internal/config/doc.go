// Package config loads dragkit configuration.
//
// Values come, in increasing priority, from built-in defaults, a
// dragkit.json file, DRAGKIT_* environment variables and command-line
// flags bound to the viper instance.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 8080,
//	    "readTimeout": "10s",
//	    "writeTimeout": "10s",
//	    "maxEventQueue": 256
//	  },
//	  "drag": {
//	    "activationDistance": 4,
//	    "keyboardStep": 10,
//	    "useOverlay": false
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics",
//	    "namespace": "dragkit"
//	  },
//	  "tracing": {"tracerName": "dragkit"},
//	  "log": {"level": "info", "format": "text"}
//	}
//
// Environment variables replace dots with underscores:
// DRAGKIT_SERVER_PORT=9000 sets server.port.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Listening on", cfg.Address())
package config
