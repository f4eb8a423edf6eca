package console

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"github.com/smartcontractkit/weierstrass/ecctypes"
	"github.com/smartcontractkit/weierstrass/encryption"
	"github.com/smartcontractkit/weierstrass/keyexchange"
	"github.com/smartcontractkit/weierstrass/signature"
	"github.com/spf13/cobra"
)

// Order(...) walks the multiples of a point one by one, only small fields are accepted.
const maxOrderFieldBits = 32

func (c *Console) curvesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curves",
		Short: "List the preset domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range ecctypes.SupportedDomains() {
				d, err := ecctypes.DomainByName(name)
				if err != nil {
					return err
				}
				curve := d.Curve()
				c.printf("%s\n  p: %s\n  a: %s\n  b: %s\n  G: %s\n  n: %s\n",
					name, c.formatInt(curve.P()), c.formatInt(curve.A()), c.formatInt(curve.B()),
					c.formatPoint(d.G()), c.formatInt(d.N()))
			}
			return nil
		},
	}
}

func (c *Console) orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Compute the order of a point by repeated addition (small fields only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, err := c.curveOnly()
			if err != nil {
				return err
			}
			if curve.P().BitLen() > maxOrderFieldBits {
				return fmt.Errorf("field modulus exceeds %d bits, order computation by repeated addition is infeasible", maxOrderFieldBits)
			}
			p, err := c.point("x", "x", "y", "y")
			if err != nil {
				return err
			}
			order, err := curve.Order(p)
			if err != nil {
				return err
			}
			c.printf("order: %s\n", c.formatInt(order))
			return nil
		},
	}
	cmd.Flags().String("x", "", "x-coordinate of the point")
	cmd.Flags().String("y", "", "y-coordinate of the point")
	return cmd
}

func (c *Console) exchangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange",
		Short: "Run a Diffie-Hellman key exchange between two generated parties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := c.domain()
			if err != nil {
				return err
			}
			kx, err := keyexchange.NewWithDomain(domain, keyexchange.Config{Logger: c.logger})
			if err != nil {
				return err
			}

			a, err := kx.Generate(c.rand)
			if err != nil {
				return err
			}
			c.printf("na: %s\npa: %s\n", c.formatInt(a.Private), c.formatPoint(a.Public))
			b, err := kx.Generate(c.rand)
			if err != nil {
				return err
			}
			c.printf("nb: %s\npb: %s\n", c.formatInt(b.Private), c.formatPoint(b.Public))

			ka, err := kx.SecretKey(a.Private, b.Public)
			if err != nil {
				return err
			}
			kb, err := kx.SecretKey(b.Private, a.Public)
			if err != nil {
				return err
			}
			c.printf("ka: %s\nkb: %s\n", c.formatPoint(ka), c.formatPoint(kb))
			if !ka.Equal(kb) {
				c.logger.WithFields(logrus.Fields{"ka": ka, "kb": kb}).Error("shared secrets differ")
			}
			return nil
		},
	}
}

func (c *Console) signatureScheme() (*signature.Scheme, error) {
	domain, err := c.domain()
	if err != nil {
		return nil, err
	}
	h, err := signature.HashByName(c.v.GetString(keyHash))
	if err != nil {
		return nil, err
	}
	return signature.NewWithDomain(domain, signature.Config{Logger: c.logger, Hash: h})
}

func addHashFlag(cmd *cobra.Command) {
	cmd.Flags().String(keyHash, "", fmt.Sprintf("Message digest, one of %v (default sha256)", signature.HashNames()))
}

func (c *Console) signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Generate a key pair and sign an integer message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := c.signatureScheme()
			if err != nil {
				return err
			}
			m, err := c.value("message", "m")
			if err != nil {
				return err
			}

			kp, err := scheme.GenerateKey(c.rand)
			if err != nil {
				return err
			}
			c.printf("Q: %s\nd: %s\n", c.formatPoint(kp.Public), c.formatInt(kp.Private))

			sig, err := scheme.Sign(c.rand, m, kp.Private)
			if err != nil {
				return err
			}
			der, err := sig.MarshalBinary()
			if err != nil {
				return err
			}
			c.printf("r: %s\ns: %s\nder: %s\n", c.formatInt(sig.R), c.formatInt(sig.S), hexutil.Encode(der))
			return nil
		},
	}
	addHashFlag(cmd)
	cmd.Flags().String("message", "", "Message m, a non-negative integer")
	return cmd
}

func (c *Console) verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature (r, s) of an integer message under a public key Q",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := c.signatureScheme()
			if err != nil {
				return err
			}
			m, err := c.value("message", "m")
			if err != nil {
				return err
			}

			var sig *signature.Signature
			if der := c.v.GetString("der"); der != "" {
				data, err := hexutil.Decode(der)
				if err != nil {
					return fmt.Errorf("invalid DER signature: %w", err)
				}
				if sig, err = signature.ParseSignature(data); err != nil {
					return err
				}
			} else {
				v, err := c.values([2]string{"r", "r"}, [2]string{"s", "s"})
				if err != nil {
					return err
				}
				sig = &signature.Signature{R: v[0], S: v[1]}
			}

			q, err := c.point("qx", "Q[0]", "qy", "Q[1]")
			if err != nil {
				return err
			}
			c.printf("valid: %t\n", scheme.Verify(m, sig, q))
			return nil
		},
	}
	addHashFlag(cmd)
	cmd.Flags().String("message", "", "Message m, a non-negative integer")
	cmd.Flags().String("r", "", "Signature component r")
	cmd.Flags().String("s", "", "Signature component s")
	cmd.Flags().String("der", "", "Hex encoded DER signature, replaces r and s")
	cmd.Flags().String("qx", "", "x-coordinate of the public key Q")
	cmd.Flags().String("qy", "", "y-coordinate of the public key Q")
	return cmd
}

func (c *Console) encryptionScheme() (*encryption.Scheme, error) {
	curve, g, err := c.curve()
	if err != nil {
		return nil, err
	}
	return encryption.New(curve, g, encryption.Config{Logger: c.logger})
}

func (c *Console) encryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a point M to a public key P with the ephemeral scalar k",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := c.encryptionScheme()
			if err != nil {
				return err
			}
			m, err := c.point("mx", "x_m", "my", "y_m")
			if err != nil {
				return err
			}
			k, err := c.value("k", "k")
			if err != nil {
				return err
			}
			pub, err := c.point("px", "x_p", "py", "y_p")
			if err != nil {
				return err
			}

			ct, err := scheme.Encrypt(m, k, pub)
			if err != nil {
				return err
			}
			data, err := ct.MarshalBinary()
			if err != nil {
				return err
			}
			c.printf("C1: %s\nC2: %s\nciphertext: %s\n", c.formatPoint(ct.C1), c.formatPoint(ct.C2), hexutil.Encode(data))
			return nil
		},
	}
	cmd.Flags().String("mx", "", "x-coordinate of the plaintext point M")
	cmd.Flags().String("my", "", "y-coordinate of the plaintext point M")
	cmd.Flags().String("k", "", "Ephemeral scalar k > 0")
	cmd.Flags().String("px", "", "x-coordinate of the recipient public key P")
	cmd.Flags().String("py", "", "y-coordinate of the recipient public key P")
	return cmd
}

func (c *Console) decryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a ciphertext (C1, C2) with the private scalar d",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := c.encryptionScheme()
			if err != nil {
				return err
			}

			ct := &encryption.Ciphertext{}
			if encoded := c.v.GetString("ciphertext"); encoded != "" {
				data, err := hexutil.Decode(encoded)
				if err != nil {
					return fmt.Errorf("invalid ciphertext: %w", err)
				}
				if err := ct.UnmarshalBinary(data); err != nil {
					return err
				}
			} else {
				if ct.C1, err = c.point("c1x", "c[0][0]", "c1y", "c[0][1]"); err != nil {
					return err
				}
				if ct.C2, err = c.point("c2x", "c[1][0]", "c2y", "c[1][1]"); err != nil {
					return err
				}
			}
			d, err := c.value("d", "d")
			if err != nil {
				return err
			}

			m, err := scheme.Decrypt(ct, d)
			if err != nil {
				return err
			}
			c.printf("M: %s\n", c.formatPoint(m))
			return nil
		},
	}
	cmd.Flags().String("c1x", "", "x-coordinate of C1")
	cmd.Flags().String("c1y", "", "y-coordinate of C1")
	cmd.Flags().String("c2x", "", "x-coordinate of C2")
	cmd.Flags().String("c2y", "", "y-coordinate of C2")
	cmd.Flags().String("ciphertext", "", "Hex encoded ciphertext as printed by encrypt, replaces C1 and C2")
	cmd.Flags().String("d", "", "Private scalar d of the recipient")
	return cmd
}
