// quizdigest 问答作者工具
//
// 用法：
//
//	quizdigest hash "歌詞" "歌名"     # 输出答案摘要，填入 quiz.yaml 的 answers
//	quizdigest check quiz.yaml        # 校验配置，并提示答案摘要与前面关卡相同的关卡
package main

import (
	"fmt"
	"io"

	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/decker502/ticketquiz/pkg/game"
	"github.com/spf13/cobra"
)

const releaseVersion = "1.0.0"

func main() {
	cobra.CheckErr(newRootCmd().Execute())
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quizdigest",
		Short:         "Authoring helper for ticketquiz answer digests.",
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.AddCommand(newHashCmd(), newCheckCmd())
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	return cmd
}

func newHashCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "hash <answer>...",
		Short: "Print sha256(lowercase(trim(answer))) for each answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printDigests(cmd.OutOrStdout(), args, quiet)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print digests only")
	return cmd
}

func printDigests(w io.Writer, answers []string, quiet bool) {
	for _, answer := range answers {
		digest := game.Digest(answer)
		if quiet {
			fmt.Fprintln(w, digest)
			continue
		}
		fmt.Fprintf(w, "%s  %q -> %q\n", digest, answer, game.NormalizeAnswer(answer))
	}
}

func newCheckCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <config.yaml>",
		Short: "Validate a quiz config and report levels sharing answer digests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkConfig(cmd.OutOrStdout(), args[0], strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when levels share answer digests")
	return cmd
}

func checkConfig(w io.Writer, path string, strict bool) error {
	cfg, err := config.LoadQuizConfig(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "OK: %s - %d levels, start time %s\n", path, len(cfg.Levels), cfg.Target().Format("2006-01-02 15:04:05 -07:00"))
	for _, level := range cfg.Levels {
		fmt.Fprintf(w, "     Level %d: image=%s music=%s\n", level.ID, cfg.ResolveAsset(level.Image), cfg.ResolveAsset(level.Music))
	}

	dups := cfg.DuplicateDigestLevels()
	if len(dups) == 0 {
		return nil
	}
	fmt.Fprintf(w, "WARN: levels %v reuse the answer digests of an earlier level (placeholders?)\n", dups)
	if strict {
		return fmt.Errorf("%d levels share answer digests", len(dups))
	}
	return nil
}
