package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scashdap/v1/client/core/wallet"
)

// walletInfo 钱包信息输出
type walletInfo struct {
	Network  string `json:"network"`
	Address  string `json:"address"`
	Path     string `json:"path"`
	EnvFile  string `json:"env_file"`
	Created  bool   `json:"created"`
	Mnemonic string `json:"mnemonic,omitempty"`
}

func (w walletInfo) PlainText() string {
	return w.Address
}

func newWalletCmd(cc *cliContext) *cobra.Command {
	var (
		envPath      string
		words        int
		showMnemonic bool
	)

	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "创建或显示钱包",
		Long: `读取 .env 中的 MY_MNEMONIC 并显示对应地址；
文件中没有助记词时生成新的助记词并写入。

示例：
  scashdap wallet
  scashdap wallet --words 24 --env ./secrets/.env
  scashdap wallet --show-mnemonic -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envPath == "" {
				envPath = cc.provider.GetWallet().EnvPath
			}
			store := wallet.NewEnvStore(envPath)

			mnemonic, ok, err := store.LoadMnemonic()
			if err != nil {
				return err
			}
			created := false
			if !ok {
				strength, err := mnemonicStrength(words)
				if err != nil {
					return err
				}
				if mnemonic, err = wallet.NewMnemonicManager().GenerateMnemonic(strength); err != nil {
					return fmt.Errorf("生成助记词失败: %w", err)
				}
				if err := store.SaveMnemonic(mnemonic); err != nil {
					return err
				}
				created = true
			}

			info, err := cc.describeWallet(store, mnemonic, created)
			if err != nil {
				return err
			}
			if created || showMnemonic {
				info.Mnemonic = mnemonic
			}

			if created {
				cc.formatter.PrintSuccess(fmt.Sprintf("已生成新钱包并写入 %s", store.Path()))
				cc.formatter.PrintWarning("请务必安全备份助记词，丢失将无法恢复资金")
			}
			return cc.formatter.Print(info)
		},
	}

	cmd.PersistentFlags().StringVar(&envPath, "env", "", "助记词文件路径 (默认读取配置 wallet.env_path)")
	cmd.Flags().IntVar(&words, "words", 12, "新助记词单词数: 12|24")
	cmd.Flags().BoolVar(&showMnemonic, "show-mnemonic", false, "输出中包含助记词")

	cmd.AddCommand(newWalletImportCmd(cc, &envPath))
	return cmd
}

func newWalletImportCmd(cc *cliContext, envPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "导入已有助记词",
		Long: `从终端隐藏输入（或标准输入管道）读取助记词并写入 .env。

示例：
  scashdap wallet import
  echo "word1 ... word12" | scashdap wallet import --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *envPath
			if path == "" {
				path = cc.provider.GetWallet().EnvPath
			}
			store := wallet.NewEnvStore(path)

			if _, ok, err := store.LoadMnemonic(); err != nil {
				return err
			} else if ok && !force {
				return fmt.Errorf("%s 已包含助记词，使用 --force 覆盖", store.Path())
			}

			mnemonic, err := readSecret(cmd, "请输入助记词")
			if err != nil {
				return err
			}
			if valid, reason := wallet.NewMnemonicManager().ValidateMnemonicWithDetails(mnemonic); !valid {
				return fmt.Errorf("%w: %s", wallet.ErrInvalidMnemonic, reason)
			}
			if err := store.SaveMnemonic(mnemonic); err != nil {
				return err
			}

			info, err := cc.describeWallet(store, mnemonic, false)
			if err != nil {
				return err
			}
			cc.formatter.PrintSuccess(fmt.Sprintf("助记词已导入 %s", store.Path()))
			return cc.formatter.Print(info)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "覆盖已有助记词")
	return cmd
}

// describeWallet 派生账户并组装输出
func (cc *cliContext) describeWallet(store *wallet.EnvStore, mnemonic string, created bool) (walletInfo, error) {
	opts := cc.provider.GetWallet()
	path, err := wallet.ParseDerivationPath(opts.DerivationPath)
	if err != nil {
		return walletInfo{}, err
	}
	account, err := wallet.DeriveAccount(mnemonic, opts.Passphrase, path, cc.params.ChainParams())
	if err != nil {
		return walletInfo{}, err
	}
	return walletInfo{
		Network: cc.params.Name,
		Address: account.AddressString(),
		Path:    path.String(),
		EnvFile: store.Path(),
		Created: created,
	}, nil
}

func mnemonicStrength(words int) (wallet.MnemonicStrength, error) {
	switch words {
	case 12:
		return wallet.Mnemonic12Words, nil
	case 24:
		return wallet.Mnemonic24Words, nil
	default:
		return 0, fmt.Errorf("无效的助记词数量: %d，支持 12, 24", words)
	}
}

// readSecret 终端下隐藏输入，否则读取一行
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt+": ")
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("读取输入失败: %w", err)
		}
		return wallet.NormalizeMnemonic(string(secret)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("读取输入失败: %w", err)
	}
	return wallet.NormalizeMnemonic(strings.TrimSpace(line)), nil
}
