// Package config provides revpoint configuration.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Environment Variables   │  ← REVPOINT_*, highest priority
//	├─────────────────────────────┤
//	│  3. .env File               │  ← <workspace>/.env
//	├─────────────────────────────┤
//	│  2. Workspace Config File   │  ← <workspace>/.revpoint.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Command line flags are applied by the caller after Load.
package config
