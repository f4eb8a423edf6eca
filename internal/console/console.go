// Package console implements the interactive command line front end of the curve engine and its protocols. Domain
// parameters, keys and messages are taken from flags, ECC_* environment variables or a config file, and prompted for
// if missing.
package console

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"github.com/smartcontractkit/weierstrass/ecctypes"
	"github.com/smartcontractkit/weierstrass/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ECC"

// Configuration keys, shared by flags, environment variables and config files.
const (
	keyConfig   = "config"
	keyCurve    = "curve"
	keyHash     = "hash"
	keyHex      = "hex"
	keyLogLevel = "log-level"
)

// Domain parameter keys, with the labels shown when prompting.
var domainKeys = []struct{ key, label string }{
	{"p", "p"},
	{"a", "a"},
	{"b", "b"},
	{"gx", "x_G"},
	{"gy", "y_G"},
	{"n", "n"},
}

// Console carries the state of a single command invocation.
type Console struct {
	v      *viper.Viper
	prompt *prompter
	out    io.Writer
	rand   io.Reader
	logger *logrus.Logger
}

// NewRootCommand returns the "ecc" command. Prompts and results are written to out, prompted values are read from in,
// log output goes to errOut. Randomness for keys and nonces is drawn from rand, use [crypto/rand.Reader].
func NewRootCommand(in io.Reader, out, errOut io.Writer, rand io.Reader) *cobra.Command {
	c := &Console{
		v:      viper.New(),
		prompt: newPrompter(in, out),
		out:    out,
		rand:   rand,
		logger: logging.Discard(),
	}
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:          "ecc",
		Short:        "Elliptic curve arithmetic, key exchange, signatures and encryption over prime fields.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd, errOut)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "Path to a YAML or JSON config file")
	flags.String(keyCurve, "", fmt.Sprintf("Preset domain, one of %v. Overrides the explicit domain parameters", ecctypes.SupportedDomains()))
	flags.String("p", "", "Field modulus p")
	flags.String("a", "", "Curve coefficient a")
	flags.String("b", "", "Curve coefficient b")
	flags.String("gx", "", "x-coordinate of the base point G")
	flags.String("gy", "", "y-coordinate of the base point G")
	flags.String("n", "", "Order n of the base point G")
	flags.Bool(keyHex, false, "Print integers as 0x-prefixed hexadecimal")
	flags.String(keyLogLevel, "warn", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(
		c.curvesCmd(),
		c.orderCmd(),
		c.exchangeCmd(),
		c.signCmd(),
		c.verifyCmd(),
		c.encryptCmd(),
		c.decryptCmd(),
	)
	return root
}

func (c *Console) init(cmd *cobra.Command, errOut io.Writer) error {
	if err := c.bind(cmd.Flags()); err != nil {
		return err
	}
	if path := c.v.GetString(keyConfig); path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	logger, err := logging.New(c.v.GetString(keyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetOutput(errOut)
	c.logger = logger
	return nil
}

// bind makes the given flags visible to viper. Flags take precedence over environment variables and config files.
func (c *Console) bind(flags *pflag.FlagSet) error {
	if err := c.v.BindPFlags(flags); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	return nil
}

// value returns the integer configured for key, or prompts for it.
func (c *Console) value(key, label string) (*big.Int, error) {
	s := c.v.GetString(key)
	if s == "" {
		var err error
		if s, err = c.prompt.ask(label); err != nil {
			return nil, err
		}
	}
	return parseInt(label, s)
}

func (c *Console) values(keys ...[2]string) ([]*big.Int, error) {
	result := make([]*big.Int, len(keys))
	for i, k := range keys {
		v, err := c.value(k[0], k[1])
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

func (c *Console) point(xKey, xLabel, yKey, yLabel string) (*ecctypes.Point, error) {
	v, err := c.values([2]string{xKey, xLabel}, [2]string{yKey, yLabel})
	if err != nil {
		return nil, err
	}
	return ecctypes.NewPoint(v[0], v[1]), nil
}

// curve returns the configured curve and base point. The order n is not needed and not prompted for.
func (c *Console) curve() (*ecctypes.Curve, *ecctypes.Point, error) {
	if name := c.v.GetString(keyCurve); name != "" {
		d, err := ecctypes.DomainByName(name)
		if err != nil {
			return nil, nil, err
		}
		return d.Curve(), d.G(), nil
	}
	curve, err := c.curveOnly()
	if err != nil {
		return nil, nil, err
	}
	g, err := c.point("gx", "x_G", "gy", "y_G")
	if err != nil {
		return nil, nil, err
	}
	return curve, g, nil
}

// curveOnly returns the configured curve, without prompting for a base point.
func (c *Console) curveOnly() (*ecctypes.Curve, error) {
	if name := c.v.GetString(keyCurve); name != "" {
		d, err := ecctypes.DomainByName(name)
		if err != nil {
			return nil, err
		}
		return d.Curve(), nil
	}
	v, err := c.domainValues(3)
	if err != nil {
		return nil, err
	}
	return ecctypes.NewCurve(v[0], v[1], v[2])
}

// domain returns the configured preset, or validates the domain given by p, a, b, G and n.
func (c *Console) domain() (*ecctypes.Domain, error) {
	if name := c.v.GetString(keyCurve); name != "" {
		return ecctypes.DomainByName(name)
	}
	v, err := c.domainValues(len(domainKeys))
	if err != nil {
		return nil, err
	}
	curve, err := ecctypes.NewCurve(v[0], v[1], v[2])
	if err != nil {
		return nil, err
	}
	return ecctypes.NewDomain(curve, ecctypes.NewPoint(v[3], v[4]), v[5])
}

func (c *Console) domainValues(count int) ([]*big.Int, error) {
	keys := make([][2]string, count)
	for i := range keys {
		keys[i] = [2]string{domainKeys[i].key, domainKeys[i].label}
	}
	return c.values(keys...)
}

func (c *Console) formatInt(v *big.Int) string {
	if c.v.GetBool(keyHex) {
		return hexutil.EncodeBig(v)
	}
	return v.String()
}

func (c *Console) formatPoint(p *ecctypes.Point) string {
	if p.IsIdentity() {
		return "O"
	}
	return fmt.Sprintf("(%s, %s)", c.formatInt(p.X()), c.formatInt(p.Y()))
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
