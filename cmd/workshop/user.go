package main

import (
	"fmt"

	internalstrings "github.com/amonks/workshop/internal/strings"
	"github.com/amonks/workshop/user"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the session user, preferences and user directory",
}

var userWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runUserWhoami,
}

var userWhoamiOutput outputFormat

var userLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as a user",
	Args:  cobra.NoArgs,
	RunE:  runUserLogin,
}

var (
	userLoginID     int64
	userLoginName   string
	userLoginEmail  string
	userLoginAvatar string
)

var userLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	Args:  cobra.NoArgs,
	RunE:  runUserLogout,
}

var userProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update the logged-in user's profile",
	Args:  cobra.NoArgs,
	RunE:  runUserProfile,
}

var (
	userProfileName   string
	userProfileEmail  string
	userProfileAvatar string
)

var userPrefsCmd = &cobra.Command{
	Use:     "prefs",
	Short:   "Show or change session preferences",
	Aliases: []string{"preferences"},
	Args:    cobra.NoArgs,
	RunE:    runUserPrefs,
}

var (
	userPrefsTheme         string
	userPrefsNotifications bool
	userPrefsAutoSave      bool
	userPrefsOutput        outputFormat
)

var userListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the user directory",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runUserList,
}

var userListOutput outputFormat

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user to the directory",
	Args:  cobra.NoArgs,
	RunE:  runUserAdd,
}

var (
	userAddName  string
	userAddEmail string
)

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userWhoamiCmd, userLoginCmd, userLogoutCmd, userProfileCmd, userPrefsCmd, userListCmd, userAddCmd)

	addOutputFlags(userWhoamiCmd, &userWhoamiOutput)

	userLoginCmd.Flags().Int64Var(&userLoginID, "id", 0, "User ID")
	userLoginCmd.Flags().StringVar(&userLoginName, "name", "", "Display name")
	userLoginCmd.Flags().StringVar(&userLoginEmail, "email", "", "Email address")
	userLoginCmd.Flags().StringVar(&userLoginAvatar, "avatar", "", "Avatar URL")
	_ = userLoginCmd.MarkFlagRequired("name")
	_ = userLoginCmd.MarkFlagRequired("email")

	userProfileCmd.Flags().StringVar(&userProfileName, "name", "", "Display name")
	userProfileCmd.Flags().StringVar(&userProfileEmail, "email", "", "Email address")
	userProfileCmd.Flags().StringVar(&userProfileAvatar, "avatar", "", "Avatar URL")

	userPrefsCmd.Flags().StringVar(&userPrefsTheme, "theme", "", "Color theme (light, dark)")
	userPrefsCmd.Flags().BoolVar(&userPrefsNotifications, "notifications", true, "Enable notifications")
	userPrefsCmd.Flags().BoolVar(&userPrefsAutoSave, "auto-save", true, "Enable auto-save")
	addOutputFlags(userPrefsCmd, &userPrefsOutput)
	addFlagAliases(preferenceFlagAliases, userPrefsCmd)

	addOutputFlags(userListCmd, &userListOutput)

	userAddCmd.Flags().StringVar(&userAddName, "name", "", "Display name")
	userAddCmd.Flags().StringVar(&userAddEmail, "email", "", "Email address")
	_ = userAddCmd.MarkFlagRequired("name")
	_ = userAddCmd.MarkFlagRequired("email")
}

func runUserWhoami(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	session, err := client.Session(cmd.Context())
	if err != nil {
		return err
	}
	if handled, err := userWhoamiOutput.write(cmd.OutOrStdout(), session); handled {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatSession(session))
	return nil
}

func runUserLogin(cmd *cobra.Command, _ []string) error {
	profile := user.User{
		ID:     userLoginID,
		Name:   internalstrings.TrimSpace(userLoginName),
		Email:  internalstrings.TrimSpace(userLoginEmail),
		Avatar: internalstrings.TrimSpace(userLoginAvatar),
	}
	if profile.Name == "" || profile.Email == "" {
		return fmt.Errorf("name and email are required")
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	session, err := client.Login(cmd.Context(), profile)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", session.User.Name)
	return nil
}

func runUserLogout(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	if _, err := client.Logout(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func runUserProfile(cmd *cobra.Command, _ []string) error {
	if !hasChangedFlags(cmd, "name", "email", "avatar") {
		return fmt.Errorf("nothing to update: pass --name, --email or --avatar")
	}
	var update user.ProfileUpdate
	if cmd.Flags().Changed("name") {
		update.Name = &userProfileName
	}
	if cmd.Flags().Changed("email") {
		update.Email = &userProfileEmail
	}
	if cmd.Flags().Changed("avatar") {
		update.Avatar = &userProfileAvatar
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	updated, session, err := client.UpdateProfile(cmd.Context(), update)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("not logged in")
	}
	fmt.Fprint(cmd.OutOrStdout(), formatSession(session))
	return nil
}

func runUserPrefs(cmd *cobra.Command, _ []string) error {
	var update user.PreferencesUpdate
	if cmd.Flags().Changed("theme") {
		theme, err := user.ParseTheme(userPrefsTheme)
		if err != nil {
			return err
		}
		update.Theme = &theme
	}
	if cmd.Flags().Changed("notifications") {
		update.Notifications = &userPrefsNotifications
	}
	if cmd.Flags().Changed("auto-save") {
		update.AutoSave = &userPrefsAutoSave
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	prefs, err := client.UpdatePreferences(cmd.Context(), update)
	if err != nil {
		return err
	}
	if handled, err := userPrefsOutput.write(cmd.OutOrStdout(), prefs); handled {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatPreferences(prefs))
	return nil
}

func runUserList(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	directory, err := client.ListUsers(cmd.Context())
	if err != nil {
		return err
	}
	if handled, err := userListOutput.write(cmd.OutOrStdout(), directory); handled {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, formatUserTable(directory.Users))
	fmt.Fprintf(out, "%d %s\n", directory.Count, pluralize(directory.Count, "user", "users"))
	return nil
}

func runUserAdd(cmd *cobra.Command, _ []string) error {
	name := internalstrings.TrimSpace(userAddName)
	email := internalstrings.TrimSpace(userAddEmail)
	if name == "" || email == "" {
		return fmt.Errorf("name and email are required")
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	created, err := client.AddUser(cmd.Context(), user.NewUser{Name: name, Email: email})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added user %d: %s\n", created.ID, created.Name)
	return nil
}
