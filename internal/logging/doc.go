// Package logger provides leveled console logging for chaff commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is prefixed and coloured with fatih/color.
//
// # Verbosity Levels
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details and errors
//
// Without flags, only WarnfAlways output is shown; errors are returned to
// cobra, which prints them.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Encoding %d files", count)
//
// Commands create a logger in their PersistentPreRun and pass it to the
// workflows package.
package logger
