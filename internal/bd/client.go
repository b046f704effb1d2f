// Package bd wraps the bd issue tracker CLI. All tracker access goes through
// the binary's --json output; fields are extracted with gjson so the client
// tolerates schema drift across bd versions.
package bd

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/davidcforbes/beads-tui/internal/model"
)

// Client shells out to the bd binary for issue and dependency operations.
type Client struct {
	BdBin  string // path to bd binary (default: "bd")
	DbPath string // --db flag value (optional)
}

// NewClient creates a Client using the given bd binary path and database path.
func NewClient(bdBin, dbPath string) *Client {
	if bdBin == "" {
		bdBin = "bd"
	}
	return &Client{BdBin: bdBin, DbPath: dbPath}
}

func (c *Client) baseArgs() []string {
	if c.DbPath != "" {
		return []string{"--db", c.DbPath}
	}
	return nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	all := append(c.baseArgs(), args...)
	cmd := exec.CommandContext(ctx, c.BdBin, all...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("bd %s: %w\n%s", strings.Join(args, " "), err, string(out))
	}
	return out, nil
}

// Ping reports whether the bd binary is reachable and the database opens.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.run(ctx, "list", "--json", "--limit", "1")
	return err
}

// List returns every issue plus the raw dependency edges embedded in the
// listing. Edges are also discoverable per issue via Deps; the embedded form
// avoids one bd invocation per issue on large databases.
func (c *Client) List(ctx context.Context) ([]*model.Issue, []model.RawEdge, error) {
	out, err := c.run(ctx, "list", "--json", "--limit", "0")
	if err != nil {
		return nil, nil, err
	}
	doc := gjson.ParseBytes(out)
	if !doc.IsArray() {
		return nil, nil, fmt.Errorf("parse bd list output: expected JSON array")
	}

	var issues []*model.Issue
	var edges []model.RawEdge
	doc.ForEach(func(_, item gjson.Result) bool {
		is := parseIssue(item)
		if is.ID == "" {
			return true
		}
		issues = append(issues, is)
		edges = append(edges, parseEdges(is.ID, item)...)
		return true
	})
	return issues, edges, nil
}

// Show returns one issue by ID.
func (c *Client) Show(ctx context.Context, id string) (*model.Issue, error) {
	out, err := c.run(ctx, "show", id, "--json")
	if err != nil {
		return nil, err
	}
	doc := gjson.ParseBytes(out)
	if doc.IsArray() {
		doc = doc.Get("0")
	}
	is := parseIssue(doc)
	if is.ID == "" {
		return nil, fmt.Errorf("parse bd show output: no issue id")
	}
	return is, nil
}

// Deps returns the dependency edges for one issue: what it depends on.
func (c *Client) Deps(ctx context.Context, id string) ([]model.RawEdge, error) {
	out, err := c.run(ctx, "dep", "list", id, "--json")
	if err != nil {
		// No dependencies recorded yet.
		return nil, nil
	}
	doc := gjson.ParseBytes(out)
	var edges []model.RawEdge
	doc.ForEach(func(_, item gjson.Result) bool {
		to := firstString(item, "id", "to", "depends_on")
		if item.Type == gjson.String {
			to = item.String()
		}
		if to == "" {
			return true
		}
		edges = append(edges, model.RawEdge{
			From: id,
			To:   to,
			Kind: model.ParseKind(firstString(item, "dependency_type", "type", "kind")),
		})
		return true
	})
	return edges, nil
}

// AddDependency records that issue depends on blocker.
func (c *Client) AddDependency(ctx context.Context, issue, blocker string) error {
	_, err := c.run(ctx, "dep", "add", issue, blocker)
	return err
}

// RemoveDependency deletes the edge from issue to blocker.
func (c *Client) RemoveDependency(ctx context.Context, issue, blocker string) error {
	_, err := c.run(ctx, "dep", "remove", issue, blocker)
	return err
}

func parseIssue(item gjson.Result) *model.Issue {
	is := &model.Issue{
		ID:       item.Get("id").String(),
		Title:    item.Get("title").String(),
		Status:   parseStatus(item.Get("status").String()),
		Priority: int(item.Get("priority").Int()),
		Estimate: item.Get("estimate").Float(),
	}
	item.Get("labels").ForEach(func(_, l gjson.Result) bool {
		is.Labels = append(is.Labels, l.String())
		return true
	})
	is.CreatedAt = parseTime(firstString(item, "created_at", "created"))
	if t := parseTime(firstString(item, "started_at", "started")); !t.IsZero() {
		is.StartedAt = &t
	}
	if t := parseTime(firstString(item, "closed_at", "closed")); !t.IsZero() {
		is.ClosedAt = &t
	}
	return is
}

// parseEdges reads the issue's embedded dependency list. bd has emitted both
// plain ID strings and {id, dependency_type} objects here.
func parseEdges(from string, item gjson.Result) []model.RawEdge {
	var edges []model.RawEdge
	item.Get("dependencies").ForEach(func(_, dep gjson.Result) bool {
		var e model.RawEdge
		if dep.Type == gjson.String {
			e = model.RawEdge{From: from, To: dep.String(), Kind: model.KindBlocks}
		} else {
			e = model.RawEdge{
				From: from,
				To:   firstString(dep, "id", "to", "depends_on"),
				Kind: model.ParseKind(firstString(dep, "dependency_type", "type", "kind")),
			}
		}
		if e.To != "" {
			edges = append(edges, e)
		}
		return true
	})
	return edges
}

func parseStatus(s string) model.Status {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	norm = strings.ReplaceAll(norm, " ", "_")
	st := model.Status(norm)
	if !st.IsValid() {
		return model.StatusOpen
	}
	return st
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func firstString(item gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := item.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
