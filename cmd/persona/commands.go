package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/kalambet/persona/internal/config"
)

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// --- profile ---

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect or modify the visitor profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get("/profile")
		if err != nil {
			return err
		}

		var profile any
		if err := decodeJSON(resp, &profile); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	},
}

var profileSetTypeCmd = &cobra.Command{
	Use:   "set-type <type>",
	Short: "Override the detected visitor type",
	Long: `Override the detected visitor type.

Valid types: job_seeker, head_hunter, peer_developer, client, unknown`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post("/profile/type", map[string]string{"type": args[0]})
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			printSuccess("Visitor type set to %s", args[0])
		case http.StatusNoContent:
			printWarning("Unknown visitor type %q ignored", args[0])
		default:
			return fmt.Errorf("server returned %d", resp.StatusCode)
		}
		return nil
	},
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the persisted profile and start fresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			printWarning("This will delete the stored visitor profile. Use --confirm to proceed.")
			return nil
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete("/profile")
		if err != nil {
			return err
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			return fmt.Errorf("server returned %d", resp.StatusCode)
		}
		printSuccess("Profile cleared")
		return nil
	},
}

func init() {
	profileClearCmd.Flags().Bool("confirm", false, "confirm profile deletion")
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetTypeCmd)
	profileCmd.AddCommand(profileClearCmd)
}

// --- content ---

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Print the personalized content for the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("lang")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/content"
		if lang != "" {
			path += "?lang=" + url.QueryEscape(lang)
		}
		resp, err := client.get(path)
		if err != nil {
			return err
		}

		var bundle any
		if err := decodeJSON(resp, &bundle); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(bundle)
	},
}

func init() {
	contentCmd.Flags().String("lang", "", "content language (en, de, fr, ar)")
}

// --- events ---

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recently tracked analytics events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(fmt.Sprintf("/events?limit=%d", limit))
		if err != nil {
			return err
		}

		var result struct {
			Total  int `json:"total"`
			Events []struct {
				ID        string `json:"id"`
				CreatedAt string `json:"createdAt"`
				Name      string `json:"name"`
				Data      string `json:"data"`
			} `json:"events"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		if result.Total == 0 {
			fmt.Println("No events recorded.")
			return nil
		}

		for _, e := range result.Events {
			line := fmt.Sprintf("%s  %s  %s", colorize(colorCyan, e.ID[:8]), e.CreatedAt, e.Name)
			if e.Data != "" {
				line += "  " + e.Data
			}
			fmt.Println(line)
		}
		fmt.Printf("%d of %d events\n", len(result.Events), result.Total)
		return nil
	},
}

func init() {
	eventsCmd.Flags().Int("limit", 20, "maximum number of events to list")
}

// --- consent ---

var consentCmd = &cobra.Command{
	Use:   "consent <grant|revoke>",
	Short: "Grant or revoke tracking consent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var granted bool
		switch args[0] {
		case "grant":
			granted = true
		case "revoke":
			granted = false
		default:
			return fmt.Errorf("argument must be \"grant\" or \"revoke\"")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.put("/consent", map[string]bool{"granted": granted})
		if err != nil {
			return err
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server returned %d", resp.StatusCode)
		}
		if granted {
			printSuccess("Consent granted")
		} else {
			printSuccess("Consent revoked")
		}
		return nil
	},
}
