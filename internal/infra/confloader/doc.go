// Package confloader provides configuration loading for kvdb.
//
// Configuration is merged from three sources, later ones winning:
//
//  1. Defaults already set on the target struct
//  2. A YAML configuration file
//  3. KVDB_* environment variables (KVDB_STORAGE_PATH → storage.path)
//
// A file watcher is available for settings that are safe to reload at
// runtime, such as the log level.
package confloader
