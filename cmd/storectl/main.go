// storectl is the terminal storefront: public catalog views plus the admin
// back office, all through the REST API.
package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"tokobagus/pkg/client"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	apiURL      string
	sessionPath string
	timeout     time.Duration
	session     *client.Session
	api         *client.Client
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storectl-session.json"
	}
	return filepath.Join(dir, "tokobagus", "session.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func rootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "storectl",
		Short:         "Browse and manage the Toko Bagus Waihatu storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := client.LoadSession(a.sessionPath)
			if err != nil {
				return fmt.Errorf("load session: %w", err)
			}
			a.session = s
			a.api = client.New(a.apiURL, s, nil)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&a.apiURL, "api", envOr("STORECTL_API", "http://localhost:5000/api"), "API base URL")
	cmd.PersistentFlags().StringVar(&a.sessionPath, "session", defaultSessionPath(), "Session file")
	cmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 30*time.Second, "Request timeout")

	cmd.AddCommand(a.loginCmd(), a.logoutCmd(), a.productsCmd(), a.categoriesCmd(),
		a.settingsCmd(), a.contactCmd(), a.statsCmd(), a.messagesCmd(), a.healthCmd())
	return cmd
}

func (a *app) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.timeout)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

func (a *app) loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as the store admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.api.Login(ctx, username, password); err != nil {
				return err
			}
			if err := a.session.Save(a.sessionPath); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Login successful")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "admin", "Admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Admin password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.api.Logout()
			return a.session.Save(a.sessionPath)
		},
	}
}

func printProducts(w io.Writer, products []client.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, client.FormatPrice(p.Price), p.Stock)
	}
	tw.Flush()
}

// productFlags binds the product write flags onto cmd.
func productFlags(cmd *cobra.Command, in *client.ProductInput, image *string) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description (HTML allowed)")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "Price in rupiah")
	cmd.Flags().IntVar(&in.Stock, "stock", 0, "Units in stock")
	cmd.Flags().StringVar(&in.Category, "category", "", "Category label")
	cmd.Flags().StringVar(image, "image", "", "Path to an image file")
}

// attachImage opens path into in. The caller closes the returned file.
func attachImage(in *client.ProductInput, path string) (io.Closer, error) {
	if path == "" {
		return io.NopCloser(nil), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	in.Image = f
	in.ImageName = filepath.Base(path)
	in.ImageType = mime.TypeByExtension(filepath.Ext(path))
	return f, nil
}

func (a *app) productsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Product catalog"}

	var page, limit int
	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List one page of products",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			res, err := a.api.Products(ctx, page, limit)
			if err != nil {
				return err
			}
			// Search narrows the fetched page only.
			printProducts(cmd.OutOrStdout(), client.FilterProducts(res.Products, search))
			fmt.Fprintf(cmd.OutOrStdout(), "\npage %d of %d (%d products)\n", res.CurrentPage, res.TotalPages, res.Total)
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "Page number")
	list.Flags().IntVar(&limit, "limit", 10, "Products per page")
	list.Flags().StringVar(&search, "search", "", "Filter the page by name or category")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx()
			defer cancel()
			p, err := a.api.Product(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s  |  stock %d  |  %s\n", p.Name, client.FormatPrice(p.Price), p.Stock, p.Category)
			if p.Image != nil {
				fmt.Fprintf(out, "image: %s\n", *p.Image)
			}
			if p.Description != "" {
				fmt.Fprintf(out, "\n%s\n", p.Description)
			}
			return nil
		},
	}

	var createIn client.ProductInput
	var createImage string
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := attachImage(&createIn, createImage)
			if err != nil {
				return err
			}
			defer f.Close()
			ctx, cancel := a.ctx()
			defer cancel()
			id, err := a.api.CreateProduct(ctx, createIn)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product created successfully (id %d)\n", id)
			return nil
		},
	}
	productFlags(create, &createIn, &createImage)

	var updateIn client.ProductInput
	var updateImage string
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a product's fields, and its image when --image is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f, err := attachImage(&updateIn, updateImage)
			if err != nil {
				return err
			}
			defer f.Close()
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.api.UpdateProduct(ctx, id, updateIn); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product updated successfully")
			return nil
		},
	}
	productFlags(update, &updateIn, &updateImage)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product and its image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.api.DeleteProduct(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product deleted successfully")
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "categories", Short: "Product categories"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			cats, err := a.api.Categories(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
			for _, c := range cats {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.Description)
			}
			return tw.Flush()
		},
	})

	var description string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			id, err := a.api.CreateCategory(ctx, args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Category created successfully (id %d)\n", id)
			return nil
		},
	}
	create.Flags().StringVar(&description, "description", "", "Category description")

	var updateDescription string
	update := &cobra.Command{
		Use:   "update ID NAME",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.api.UpdateCategory(ctx, id, args[1], updateDescription); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Category updated successfully")
			return nil
		},
	}
	update.Flags().StringVar(&updateDescription, "description", "", "Category description")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.api.DeleteCategory(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Category deleted successfully")
			return nil
		},
	}

	cmd.AddCommand(create, update, del)
	return cmd
}

func (a *app) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "settings", Short: "Store address, contact and about page"}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the store settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			s, err := a.api.Settings(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Address:  %s\nPhone:    %s\nMaps:     %s\n\n%s\n", s.Address, s.Phone, s.MapsURL, s.AboutUs)
			return nil
		},
	})

	var in client.Setting
	set := &cobra.Command{
		Use:   "set",
		Short: "Overwrite the store settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			// Unset flags keep their current values.
			cur, err := a.api.Settings(ctx)
			if err != nil {
				return err
			}
			merged := *cur
			flags := cmd.Flags()
			if flags.Changed("address") {
				merged.Address = in.Address
			}
			if flags.Changed("phone") {
				merged.Phone = in.Phone
			}
			if flags.Changed("maps-url") {
				merged.MapsURL = in.MapsURL
			}
			if flags.Changed("about") {
				merged.AboutUs = in.AboutUs
			}
			if err := a.api.UpdateSettings(ctx, merged); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings saved")
			return nil
		},
	}
	set.Flags().StringVar(&in.Address, "address", "", "Store address")
	set.Flags().StringVar(&in.Phone, "phone", "", "Contact phone")
	set.Flags().StringVar(&in.MapsURL, "maps-url", "", "Google Maps link")
	set.Flags().StringVar(&in.AboutUs, "about", "", "About us text")

	cmd.AddCommand(set)
	return cmd
}

func (a *app) contactCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "contact", Short: "Contact the store"}
	var in client.ContactInput
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a message to the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			if _, err := a.api.SendMessage(ctx, in); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Message sent successfully")
			return nil
		},
	}
	send.Flags().StringVar(&in.Name, "name", "", "Your name")
	send.Flags().StringVar(&in.Email, "email", "", "Your email (optional)")
	send.Flags().StringVar(&in.Phone, "phone", "", "Your phone number")
	send.Flags().StringVar(&in.Subject, "subject", "", "Subject")
	send.Flags().StringVarP(&in.Message, "message", "m", "", "Message body")
	_ = send.MarkFlagRequired("name")
	_ = send.MarkFlagRequired("message")
	cmd.AddCommand(send)
	return cmd
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the admin dashboard counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			s, err := a.api.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Products:   %d\nCategories: %d\nMessages:   %d\nLow stock:  %d\n",
				s.TotalProducts, s.TotalCategories, s.TotalMessages, s.LowStockProducts)
			return nil
		},
	}
}

func (a *app) messagesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "messages", Short: "Contact form inbox"}

	var page, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List received messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			res, err := a.api.Messages(ctx, page, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range res.Messages {
				fmt.Fprintf(out, "#%d  %s  %s <%s> %s\n  %s\n  %s\n\n",
					m.ID, m.CreatedAt.Format("2006-01-02 15:04"), m.Name, m.Email, m.Phone, m.Subject, m.Body)
			}
			fmt.Fprintf(out, "page %d of %d (%d messages)\n", res.CurrentPage, res.TotalPages, res.Total)
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "Page number")
	list.Flags().IntVar(&limit, "limit", 10, "Messages per page")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.api.DeleteMessage(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Message deleted successfully")
			return nil
		},
	}

	cmd.AddCommand(list, del)
	return cmd
}

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			h, err := a.api.Health(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", h.Status, h.Message)
			return nil
		},
	}
}
