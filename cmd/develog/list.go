package main

import (
	"encoding/json"
	"os"

	"develog/internal/content"
	"develog/internal/logging"
	"develog/internal/site"
)

// PostsCmd implements 'posts'.
type PostsCmd struct{}

func (p *PostsCmd) Run(g *Global, root *CLI) error {
	a, err := root.setup(g)
	if err != nil {
		return err
	}
	posts, err := a.loader.AllPosts(g.Ctx)
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []*content.Post{}
	}
	return printJSON(posts)
}

// TreeCmd implements 'tree'.
type TreeCmd struct{}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	a, err := root.setup(g)
	if err != nil {
		return err
	}
	snap, err := site.Load(g.Ctx, a.loader, logging.ContentLogger(a.provider))
	if err != nil {
		return err
	}
	tree := snap.Tree
	if tree == nil {
		tree = []*content.TreeNode{}
	}
	return printJSON(tree)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
