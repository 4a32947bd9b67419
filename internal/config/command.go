package config

// CommandKind identifies the subcommand selected on the command line.
type CommandKind int

const (
	CommandNew CommandKind = iota
	CommandBuild
	CommandServe
	CommandTest
	CommandEndToEnd
	CommandWatch
)

var commandNames = map[CommandKind]string{
	CommandNew:      "new",
	CommandBuild:    "build",
	CommandServe:    "serve",
	CommandTest:     "test",
	CommandEndToEnd: "end-to-end",
	CommandWatch:    "watch",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsWatch reports whether the command keeps rebuilding on change.
func (k CommandKind) IsWatch() bool { return k == CommandWatch }

// Opts are the build options shared by every command except new.
type Opts struct {
	Release     bool     `short:"r" help:"Build artifacts in release mode, with optimizations."`
	Precompress bool     `short:"P" help:"Precompress static assets with gzip. Applies to release builds only."`
	Project     string   `short:"p" help:"Which project to use, from a list of projects defined in a workspace."`
	Features    []string `help:"The features to use when compiling all targets."`
	LibFeatures []string `name:"lib-features" help:"The features to use when compiling the lib target."`
	BinFeatures []string `name:"bin-features" help:"The features to use when compiling the bin target."`
	Verbose     int      `short:"v" type:"counter" help:"Verbosity (none: info, errors & warnings, -v: verbose, -vv: very verbose)."`
	WasmDebug   bool     `name:"wasm-debug" help:"Include debug information in Wasm output."`
}

// NewOpts configures project generation for the new command.
type NewOpts struct {
	Git    string
	Branch string
	Name   string
}

// Invocation is the parsed command line. It is not modified after parsing.
type Invocation struct {
	Command      CommandKind
	Opts         Opts
	Log          []string
	ManifestPath string
	WorkingDir   string
	BinArgs      []string
	New          NewOpts
}
