package cli

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newItemsCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage catalog items",
	}

	cmd.AddCommand(newItemsListCmd(client))
	cmd.AddCommand(newItemsGetCmd(client))
	cmd.AddCommand(newItemsAddCmd(client))
	cmd.AddCommand(newItemsRemoveCmd(client))

	return cmd
}

func newItemsListCmd(client *Client) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items, optionally filtered by title or author",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := "/api/items"
			if query != "" {
				path += "?q=" + url.QueryEscape(query)
			}

			var items []itemPayload
			if err := client.get(path, &items); err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, items)
			}
			rows := make([][]string, 0, len(items))
			for _, it := range items {
				rows = append(rows, []string{it.ID, it.Title, it.Author, it.Genre, strconv.FormatBool(it.Available)})
			}
			return printTable(os.Stdout, []string{"ID", "TITLE", "AUTHOR", "GENRE", "AVAILABLE"}, rows)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by title or author substring")

	return cmd
}

func newItemsGetCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "get <item-id>",
		Short: "Show a single catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var it itemPayload
			if err := client.get("/api/items/"+url.PathEscape(args[0]), &it); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, it)
			}
			return printTable(os.Stdout,
				[]string{"ID", "TITLE", "AUTHOR", "GENRE", "AVAILABLE"},
				[][]string{{it.ID, it.Title, it.Author, it.Genre, strconv.FormatBool(it.Available)}})
		},
	}
}

func newItemsAddCmd(client *Client) *cobra.Command {
	var (
		id     string
		title  string
		author string
		genre  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a catalog item",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var it itemPayload
			err := client.post("/api/items", map[string]string{
				"id":     id,
				"title":  title,
				"author": author,
				"genre":  genre,
			}, &it)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, it)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Added %s: %q\n", it.ID, it.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Item identifier (required)")
	cmd.Flags().StringVar(&title, "title", "", "Title (required)")
	cmd.Flags().StringVar(&author, "author", "", "Author")
	cmd.Flags().StringVar(&genre, "genre", "", "Genre")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newItemsRemoveCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Removed bool `json:"removed"`
			}
			if err := client.delete("/api/items/"+url.PathEscape(args[0]), &resp); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, resp)
			}
			if resp.Removed {
				_, _ = fmt.Fprintf(os.Stdout, "Removed %s\n", args[0])
			} else {
				_, _ = fmt.Fprintf(os.Stdout, "No item %s in the catalog\n", args[0])
			}
			return nil
		},
	}
}
