package resolvecmd

import (
    "encoding/json"
    "fmt"
    "io"
    "sort"
    "strings"

    htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
    "github.com/spf13/cobra"
    "gopkg.in/yaml.v3"

    "isfdbmeta/src/internal/app"
    "isfdbmeta/src/internal/schema"
)

// Report is what resolve prints: the strategy taken and its records.
type Report struct {
    Strategy string            `yaml:"strategy" json:"strategy"`
    Records  []schema.Metadata `yaml:"records" json:"records"`
}

// New returns the resolve command which looks an entry up remotely and prints its metadata.
func New(load app.LoadFunc) *cobra.Command {
    var ids, authors []string
    var title, format string
    cmd := &cobra.Command{
        Use:          "resolve",
        Short:        "Resolve identifiers or title/author to normalized ISFDB metadata",
        Args:         cobra.NoArgs,
        SilenceUsage: true,
        RunE: func(cmd *cobra.Command, args []string) error {
            e, err := app.ParseEntry(ids, title, authors)
            if err != nil { return err }
            svc, opts, err := load()
            if err != nil { return err }
            out, err := svc.ResolveMatches(cmd.Context(), e, opts)
            if err != nil { return err }
            rep := Report{Strategy: out.Strategy.String(), Records: make([]schema.Metadata, 0, len(out.Matches))}
            for _, m := range out.Matches {
                rep.Records = append(rep.Records, m.Metadata)
            }
            return Render(cmd.OutOrStdout(), rep, format)
        },
    }
    cmd.Flags().StringArrayVar(&ids, "id", nil, "identifier as kind:value (isfdb, isfdb-title, isbn, isfdb-catalog, year, month, price); repeatable")
    cmd.Flags().StringVar(&title, "title", "", "title to search for when no identifier applies")
    cmd.Flags().StringArrayVar(&authors, "author", nil, "author to search for; repeatable")
    cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml, json or markdown")
    return cmd
}

// Render writes rep in the named format.
func Render(w io.Writer, rep Report, format string) error {
    switch strings.ToLower(strings.TrimSpace(format)) {
    case "", "yaml":
        b, err := yaml.Marshal(rep)
        if err != nil { return err }
        _, err = w.Write(b)
        return err
    case "json":
        enc := json.NewEncoder(w)
        enc.SetIndent("", "  ")
        return enc.Encode(rep)
    case "markdown", "md":
        return renderMarkdown(w, rep)
    default:
        return fmt.Errorf("unknown format %q (want yaml, json or markdown)", format)
    }
}

func renderMarkdown(w io.Writer, rep Report) error {
    var b strings.Builder
    fmt.Fprintf(&b, "_strategy: %s_\n", rep.Strategy)
    if len(rep.Records) == 0 {
        b.WriteString("\nNo match.\n")
    }
    for _, m := range rep.Records {
        fmt.Fprintf(&b, "\n## %s\n\n", m.Title)
        fmt.Fprintf(&b, "- **Authors:** %s\n", strings.Join(m.Authors, ", "))
        if m.Publisher != "" {
            fmt.Fprintf(&b, "- **Publisher:** %s\n", m.Publisher)
        }
        if !m.PubDate.IsZero() {
            fmt.Fprintf(&b, "- **Date:** %s\n", m.PubDate)
        }
        if m.Series != nil {
            s := m.Series.Name
            if m.Series.Index != "" {
                s += " #" + m.Series.Index
            }
            fmt.Fprintf(&b, "- **Series:** %s\n", s)
        }
        if m.Language != "" {
            fmt.Fprintf(&b, "- **Language:** %s\n", m.Language)
        }
        if len(m.Tags) > 0 {
            fmt.Fprintf(&b, "- **Tags:** %s\n", strings.Join(m.Tags, ", "))
        }
        kinds := make([]string, 0, len(m.Identifiers))
        for k := range m.Identifiers {
            kinds = append(kinds, k)
        }
        sort.Strings(kinds)
        for _, k := range kinds {
            fmt.Fprintf(&b, "- **%s:** %s\n", k, m.Identifiers[k])
        }
        if m.CoverURL != "" {
            fmt.Fprintf(&b, "- **Cover:** %s\n", m.CoverURL)
        }
        if m.Comments != "" {
            md, err := htmltomarkdown.ConvertString(m.Comments)
            if err != nil { return fmt.Errorf("render comments: %w", err) }
            fmt.Fprintf(&b, "\n%s\n", strings.TrimSpace(md))
        }
    }
    _, err := io.WriteString(w, b.String())
    return err
}
