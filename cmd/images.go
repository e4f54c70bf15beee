package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/mdinclude/internal/images"
)

var imagesCmd = &cobra.Command{
	Use:   "images INPUT OUTPUT",
	Short: "Point relative image references at raw GitHub URLs",
	Long: `Rewrite whole-line image references in INPUT so they load from
raw.githubusercontent.com and write the result to OUTPUT.

  ![alt](img/logo.png)              -> ![alt](https://raw.githubusercontent.com/USER/REPO/BRANCH/img/logo.png)
  ![alt](img/logo.png | width=200)  -> <img src="..." alt="alt" width="200">

The repository is taken from images.repo_user, images.repo_name and
images.branch, or from the flags below.

Examples:
  mdinclude images README.md dist/README.md --user octo --repo docs`,
	Args: cobra.ExactArgs(2),
	RunE: runImages,
}

var (
	imagesUser   string
	imagesRepo   string
	imagesBranch string
)

func init() {
	rootCmd.AddCommand(imagesCmd)

	imagesCmd.Flags().StringVar(&imagesUser, "user", "", "Repository owner (overrides images.repo_user)")
	imagesCmd.Flags().StringVar(&imagesRepo, "repo", "", "Repository name (overrides images.repo_name)")
	imagesCmd.Flags().StringVar(&imagesBranch, "branch", "", "Branch (overrides images.branch)")
}

func runImages(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}

	repo := rt.cfg.Images
	if imagesUser != "" {
		repo.RepoUser = imagesUser
	}
	if imagesRepo != "" {
		repo.RepoName = imagesRepo
	}
	if imagesBranch != "" {
		repo.Branch = imagesBranch
	}

	resolver, err := images.NewResolver(rt.root, repo, rt.cfg.Options(), rt.logger)
	if err != nil {
		return err
	}

	if _, err := resolver.Resolve(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Resolved images %s -> %s\n", args[0], args[1])

	return nil
}
