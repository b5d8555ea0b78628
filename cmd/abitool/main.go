// Command abitool computes function selectors and event topics and encodes
// or decodes ABI payloads.
//
// Usage:
//
//	abitool [flags] selector <signature>
//	abitool [flags] topic <signature>
//	abitool [flags] encode <signature> <value>...
//	abitool [flags] decode <signature|types> <hex>
//
// Flags:
//
//	--verbosity   Log level 0-5 (default: 3)
//	--log.format  Log output format: json, text (default: json)
//	--call        Payload carries a 4-byte selector (encode, decode)
//	--version     Print version and exit
//
// Values are decimal or 0x hex integers, 0x hex byte strings, true/false,
// plain or double-quoted strings and [a,b,...] arrays. For decode, types may
// be a bare comma-separated list such as "uint32,bool".
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eth2030/abicodec/abi"
	"github.com/eth2030/abicodec/log"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	return runWith(args, os.Stdout, os.Stderr)
}

func runWith(args []string, stdout, stderr io.Writer) int {
	cfg, rest, exit, code := parseFlags(args, stdout, stderr)
	if exit {
		return code
	}

	// Validate configuration before doing any work.
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger, err := log.NewWithFormat(stderr, log.VerbosityToLevel(cfg.Verbosity), cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	log.SetDefault(logger)
	lg := logger.Module("abitool")

	if len(rest) == 0 {
		fmt.Fprintln(stderr, "Error: missing command")
		printUsage(stderr)
		return 2
	}
	cmd, cmdArgs := rest[0], rest[1:]
	lg.Debug("Running command", "command", cmd, "args", len(cmdArgs), "call", cfg.Call)

	var lines []string
	switch cmd {
	case "selector":
		lines, err = cmdSelector(cmdArgs)
	case "topic":
		lines, err = cmdTopic(cmdArgs)
	case "encode":
		lines, err = cmdEncode(cfg, cmdArgs)
	case "decode":
		lines, err = cmdDecode(cfg, cmdArgs)
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", cmd)
		printUsage(stderr)
		return 2
	}
	if err != nil {
		lg.Error("Command failed", "command", cmd, "err", err)
		return 1
	}
	for _, line := range lines {
		fmt.Fprintln(stdout, line)
	}
	return 0
}

// parseFlags parses CLI arguments into a Config. Returns the config, the
// remaining positional arguments, whether the caller should exit
// immediately, and the exit code.
func parseFlags(args []string, stdout, stderr io.Writer) (Config, []string, bool, int) {
	cfg := DefaultConfig()
	ApplyEnvironment(&cfg)
	fs := newFlagSet(&cfg)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }

	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return cfg, nil, true, 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cfg, nil, true, 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "abitool %s (commit %s)\n", version, commit)
		return cfg, nil, true, 0
	}

	return cfg, fs.Args(), false, 0
}

// newFlagSet creates a flag.FlagSet that binds all CLI flags to the given
// Config. The FlagSet uses ContinueOnError so callers control the error
// handling behavior.
func newFlagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("abitool", flag.ContinueOnError)
	fs.IntVar(&cfg.Verbosity, "verbosity", cfg.Verbosity, "log level 0-5 (0=errors only, 5=trace)")
	fs.StringVar(&cfg.LogFormat, "log.format", cfg.LogFormat, "log output format (json, text)")
	fs.BoolVar(&cfg.Call, "call", cfg.Call, "payload carries a 4-byte selector (encode, decode)")
	return fs
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  abitool [flags] selector <signature>")
	fmt.Fprintln(w, "  abitool [flags] topic <signature>")
	fmt.Fprintln(w, "  abitool [flags] encode <signature> <value>...")
	fmt.Fprintln(w, "  abitool [flags] decode <signature|types> <hex>")
	fmt.Fprintln(w, "\nFlags:")
	fmt.Fprintln(w, "  -verbosity int     log level 0-5 (default 3)")
	fmt.Fprintln(w, "  -log.format string log output format: json, text (default json)")
	fmt.Fprintln(w, "  -call              payload carries a 4-byte selector")
	fmt.Fprintln(w, "  -version           print version and exit")
}

func cmdSelector(args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("selector takes one signature, got %d arguments", len(args))
	}
	sig, _, err := abi.ParseSignature(args[0])
	if err != nil {
		return nil, err
	}
	log.Debug("Selector computed", "signature", sig.String())
	return []string{fmt.Sprintf("0x%08x", sig.Selector())}, nil
}

func cmdTopic(args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("topic takes one signature, got %d arguments", len(args))
	}
	sig, _, err := abi.ParseSignature(args[0])
	if err != nil {
		return nil, err
	}
	log.Debug("Topic computed", "signature", sig.String())
	return []string{sig.Topic().Hex()}, nil
}

func cmdEncode(cfg Config, args []string) ([]string, error) {
	if len(args) < 1 {
		return nil, errors.New("encode takes a signature followed by its values")
	}
	sig, kinds, err := abi.ParseSignature(args[0])
	if err != nil {
		return nil, err
	}
	texts := args[1:]
	if len(texts) != len(kinds) {
		return nil, fmt.Errorf("%w: %s takes %d values, got %d", abi.ErrArgumentCount, sig, len(kinds), len(texts))
	}
	vals := make([]any, len(kinds))
	for i, k := range kinds {
		if vals[i], err = parseValue(k, texts[i]); err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
	}
	var out []byte
	if cfg.Call {
		out, err = abi.NewMethod(sig.Name(), kinds, nil).EncodeCall(vals...)
	} else {
		sink := abi.NewSink(len(kinds))
		for i, k := range kinds {
			if err = sink.PushValue(k, vals[i]); err != nil {
				break
			}
		}
		if err == nil {
			out, err = sink.Finalize()
		}
	}
	if err != nil {
		return nil, err
	}
	log.Debug("Payload encoded", "signature", sig.String(), "bytes", len(out))
	return []string{hexutil.Encode(out)}, nil
}

func cmdDecode(cfg Config, args []string) ([]string, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("decode takes types and a hex payload, got %d arguments", len(args))
	}
	data, err := hexutil.Decode(strings.TrimSpace(args[1]))
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	var vals []any
	if strings.Contains(args[0], "(") {
		sig, kinds, err := abi.ParseSignature(args[0])
		if err != nil {
			return nil, err
		}
		if cfg.Call {
			vals, err = abi.NewMethod(sig.Name(), kinds, nil).DecodeInput(data)
		} else {
			vals, err = decodePayload(kinds, data)
		}
		if err != nil {
			return nil, err
		}
	} else {
		if cfg.Call {
			return nil, fmt.Errorf("%w: -call needs a full signature to check the selector", abi.ErrInvalidSignature)
		}
		kinds, err := parseTypeList(args[0])
		if err != nil {
			return nil, err
		}
		if vals, err = decodePayload(kinds, data); err != nil {
			return nil, err
		}
	}

	lines := make([]string, len(vals))
	for i, v := range vals {
		lines[i] = formatValue(v)
	}
	return lines, nil
}

// parseTypeList parses a comma-separated list of type names.
func parseTypeList(list string) ([]abi.Kind, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	fields := strings.Split(list, ",")
	kinds := make([]abi.Kind, len(fields))
	for i, f := range fields {
		k, err := abi.ParseType(f)
		if err != nil {
			return nil, err
		}
		kinds[i] = k
	}
	return kinds, nil
}

// decodePayload pops one value per type from data.
func decodePayload(kinds []abi.Kind, data []byte) ([]any, error) {
	stream := abi.NewStream(data)
	vals := make([]any, len(kinds))
	for i, k := range kinds {
		v, err := stream.PopValue(k)
		if err != nil {
			return nil, fmt.Errorf("value %d (%s): %w", i, k, err)
		}
		vals[i] = v
	}
	log.Debug("Payload decoded", "values", len(vals), "bytes", len(data))
	return vals, nil
}
