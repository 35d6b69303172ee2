package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	ikescan "github.com/probelab/go-ikescan"
)

var (
	configFile  string
	aggressive  bool
	sourcePort  int
	destPort    int
	retries     int
	interval    time.Duration
	backoff     float64
	transFlag   []string
	lifetime    uint32
	lifesize    uint32
	keyLength   uint16
	vendorIDs   []string
	identity    string
	idType      int
	patternFile string
	logLevel    string
	logFile     string
)

var rootCmd = &cobra.Command{
	Use:   "ike-scan [flags] host...",
	Short: "Fingerprint IPsec VPN endpoints with IKE phase-1 probes",
	Long: `ike-scan sends ISAKMP phase-1 datagrams (main or aggressive mode) to the
given hosts and decodes whatever comes back: handshake acceptance, notify
errors, and Vendor ID payloads matched against a fingerprint pattern list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd, args)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.Flags().BoolVarP(&aggressive, "aggressive", "A", false, "use aggressive mode instead of main mode")
	rootCmd.Flags().IntVar(&sourcePort, "sport", 500, "UDP source port (0 = ephemeral)")
	rootCmd.Flags().IntVar(&destPort, "dport", 500, "UDP destination port")
	rootCmd.Flags().IntVarP(&retries, "retry", "r", 3, "number of send attempts per host")
	rootCmd.Flags().DurationVarP(&interval, "interval", "i", 500*time.Millisecond, "wait after each attempt")
	rootCmd.Flags().Float64Var(&backoff, "backoff", 1.5, "interval multiplier between attempts")
	rootCmd.Flags().StringArrayVar(&transFlag, "trans", nil,
		"custom transform as cipher,hash,auth,group (repeatable); default is the stock eight")
	rootCmd.Flags().Uint32Var(&lifetime, "lifetime", 0, "SA lifetime in seconds (0 = no lifetime attribute)")
	rootCmd.Flags().Uint32Var(&lifesize, "lifesize", 0, "SA life in kilobytes (0 = no lifesize attribute)")
	rootCmd.Flags().Uint16Var(&keyLength, "keylen", 0, "key length attribute for variable-length ciphers")
	rootCmd.Flags().StringArrayVar(&vendorIDs, "vendor", nil, "vendor ID payload as hex (repeatable)")
	rootCmd.Flags().StringVar(&identity, "id", "", "identification value for aggressive mode")
	rootCmd.Flags().IntVar(&idType, "idtype", int(ikescan.IDTypeUserFQDN), "identification type")
	rootCmd.Flags().StringVarP(&patternFile, "patterns", "p", "", "vendor ID fingerprint pattern file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (trace..panic)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log to a rotated file instead of stderr")
}

func runScan(cmd *cobra.Command, hosts []string) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	lg, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	ikescan.SetLogger(lg)

	opt, err := buildOption(cfg)
	if err != nil {
		return err
	}

	scanner := ikescan.NewScanner(opt, lg)
	results, err := scanner.Scan(cmd.Context(), hosts)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		if !res.Responded {
			fmt.Fprintf(out, "%s\tno response\n", res.Host)
			continue
		}
		for _, msg := range res.Messages {
			fmt.Fprintf(out, "%s\t%s\t(%s)\n", res.Host, msg, res.RTT.Round(time.Millisecond))
		}
	}
	return nil
}

// applyFlags overlays explicitly-set flags onto the file config.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	if cmd.Flags().Changed("aggressive") {
		cfg.Aggressive = aggressive
	}
	if cmd.Flags().Changed("sport") {
		cfg.SourcePort = sourcePort
	}
	if cmd.Flags().Changed("dport") {
		cfg.DestPort = destPort
	}
	if cmd.Flags().Changed("retry") {
		cfg.Retries = retries
	}
	if cmd.Flags().Changed("interval") {
		cfg.Interval = interval
	}
	if cmd.Flags().Changed("backoff") {
		cfg.Backoff = backoff
	}
	if cmd.Flags().Changed("id") {
		cfg.Identity = identity
	}
	if cmd.Flags().Changed("idtype") {
		cfg.IDType = idType
	}
	if cmd.Flags().Changed("patterns") {
		cfg.PatternFile = patternFile
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = logFile
	}
	cfg.VendorIDs = append(cfg.VendorIDs, vendorIDs...)
	for _, t := range transFlag {
		if tc, err := parseTransformFlag(t); err == nil {
			cfg.Transforms = append(cfg.Transforms, tc)
		} else {
			fmt.Fprintf(os.Stderr, "ignoring bad --trans %q: %v\n", t, err)
		}
	}
}

// parseTransformFlag parses "cipher,hash,auth,group" into a transform,
// inheriting the global keylen/lifetime/lifesize flags.
func parseTransformFlag(s string) (TransformConfig, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return TransformConfig{}, fmt.Errorf("want cipher,hash,auth,group")
	}
	vals := make([]uint16, 4)
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 16)
		if err != nil {
			return TransformConfig{}, err
		}
		vals[i] = uint16(v)
	}
	return TransformConfig{
		Cipher:   vals[0],
		Hash:     vals[1],
		Auth:     vals[2],
		Group:    vals[3],
		KeyLen:   keyLength,
		Lifetime: lifetime,
		LifeSize: lifesize,
	}, nil
}

func buildOption(cfg *Config) (*ikescan.ScanOption, error) {
	opt := ikescan.NewScanOption().
		SetSourcePort(cfg.SourcePort).
		SetDestPort(cfg.DestPort).
		SetRetries(cfg.Retries).
		SetInterval(cfg.Interval).
		SetBackoff(cfg.Backoff)

	if cfg.Aggressive {
		opt.SetExchange(ikescan.ExchangeAggressive)
	}
	if cfg.Identity != "" || cfg.Aggressive {
		opt.SetIdentity(byte(cfg.IDType), []byte(cfg.Identity))
	}

	if len(cfg.Transforms) > 0 {
		specs := make([]ikescan.TransformSpec, 0, len(cfg.Transforms))
		for _, tc := range cfg.Transforms {
			specs = append(specs, ikescan.TransformSpec{
				Cipher:          tc.Cipher,
				KeyLength:       tc.KeyLen,
				Hash:            tc.Hash,
				Auth:            tc.Auth,
				Group:           tc.Group,
				LifetimeSeconds: tc.Lifetime,
				LifeKilobytes:   tc.LifeSize,
			})
		}
		opt.SetTransforms(specs)
	}

	for _, v := range cfg.VendorIDs {
		vid, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("bad vendor id %q: %w", v, err)
		}
		opt.AddVendorID(vid)
	}

	if cfg.PatternFile != "" {
		patterns, err := ikescan.LoadVendorPatterns(cfg.PatternFile)
		if err != nil {
			return nil, err
		}
		opt.SetPatterns(patterns)
	}
	return opt, nil
}

func newLogger(cfg LogConfig) (*logrus.Logger, error) {
	lg := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", cfg.Level, err)
	}
	lg.SetLevel(level)

	if cfg.File != "" {
		lg.SetOutput(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
	}
	return lg, nil
}
