package latchcli

import (
	"github.com/spf13/cobra"

	"github.com/latchvault/latch-core/internal/clierror"
	"github.com/latchvault/latch-core/internal/command"
)

type entryFieldsFlags struct {
	title    string
	username string
	password string
	url      string
	iconURL  string
	notes    string
}

func (f *entryFieldsFlags) register(cmd *cobra.Command, titleRequired bool) {
	cmd.Flags().StringVar(&f.title, "title", "", "entry title")
	cmd.Flags().StringVar(&f.username, "username", "", "entry username")
	cmd.Flags().StringVar(&f.password, "password", "", "entry password")
	cmd.Flags().StringVar(&f.url, "url", "", "entry URL")
	cmd.Flags().StringVar(&f.iconURL, "icon-url", "", "entry icon URL")
	cmd.Flags().StringVar(&f.notes, "notes", "", "entry notes")

	if titleRequired {
		_ = cmd.MarkFlagRequired("title")
	}
}

func (f *entryFieldsFlags) request() struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url,omitempty"`
	IconURL  string `json:"iconUrl,omitempty"`
	Notes    string `json:"notes,omitempty"`
} {
	return struct {
		Title    string `json:"title"`
		Username string `json:"username"`
		Password string `json:"password"`
		URL      string `json:"url,omitempty"`
		IconURL  string `json:"iconUrl,omitempty"`
		Notes    string `json:"notes,omitempty"`
	}{f.title, f.username, f.password, f.url, f.iconURL, f.notes}
}

func newAddCmd() *cobra.Command {
	var fields entryFieldsFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new entry to the vault",
		Run: func(_ *cobra.Command, _ []string) {
			if err := clierror.Check(theApp.ensureUnlocked()); err != nil {
				return
			}

			var out struct {
				ID string `json:"id"`
			}

			if err := clierror.Check(theApp.dispatch(command.AddEntry, fields.request(), &out)); err != nil {
				return
			}

			theApp.streams.Printf("added entry %s\n", out.ID)
		},
	}

	fields.register(cmd, true)

	return cmd
}

func newUpdateCmd() *cobra.Command {
	var fields entryFieldsFlags

	cmd := &cobra.Command{
		Use:   "update <entry-id>",
		Short: "Update an existing entry",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := clierror.Check(theApp.ensureUnlocked()); err != nil {
				return
			}

			payload := struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Username string `json:"username"`
				Password string `json:"password"`
				URL      string `json:"url,omitempty"`
				IconURL  string `json:"iconUrl,omitempty"`
				Notes    string `json:"notes,omitempty"`
			}{
				ID:       args[0],
				Title:    fields.title,
				Username: fields.username,
				Password: fields.password,
				URL:      fields.url,
				IconURL:  fields.iconURL,
				Notes:    fields.notes,
			}

			if err := clierror.Check(theApp.dispatch(command.UpdateEntry, payload, nil)); err != nil {
				return
			}

			theApp.streams.Printf("updated entry %s\n", args[0])
		},
	}

	fields.register(cmd, true)

	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete an entry from the vault",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := clierror.Check(theApp.ensureUnlocked()); err != nil {
				return
			}

			req := struct {
				EntryID string `json:"entryId"`
			}{args[0]}

			if err := clierror.Check(theApp.dispatch(command.DeleteEntry, req, nil)); err != nil {
				return
			}

			theApp.streams.Printf("deleted entry %s\n", args[0])
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <entry-id>",
		Short: "Show a full entry, including its secret fields",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := clierror.Check(theApp.ensureUnlocked()); err != nil {
				return
			}

			req := struct {
				EntryID string `json:"entryId"`
			}{args[0]}

			var out struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Username string `json:"username"`
				Password string `json:"password"`
				URL      string `json:"url"`
				Notes    string `json:"notes"`
				IconURL  string `json:"icon_url"`
			}

			if err := clierror.Check(theApp.dispatch(command.GetFullEntry, req, &out)); err != nil {
				return
			}

			theApp.streams.Printf("id:       %s\ntitle:    %s\nusername: %s\npassword: %s\nurl:      %s\nnotes:    %s\n",
				out.ID, out.Title, out.Username, out.Password, out.URL, out.Notes)
		},
	}
}
