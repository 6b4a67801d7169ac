package main

import (
	"context"
	"fmt"
	"os"

	"rosterhub/internal/config"
	"rosterhub/internal/database"
	"rosterhub/internal/logging"
	"rosterhub/internal/membership"
	"rosterhub/internal/models"
	"rosterhub/internal/repository"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var logger *logging.Logger

func initLogger() {
	logging.Configure(&logging.Config{
		Level:      "info",
		File:       "./logs/rosterctl.log",
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	})
	logger = logging.GetLogger()
}

func openDatabase() *gorm.DB {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Error loading config: %v", err)
		os.Exit(1)
	}
	db, err := database.Connect(cfg.DatabaseURL, false)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	return db
}

var rootCmd = &cobra.Command{
	Use:   "rosterctl",
	Short: "RosterHub admin CLI",
	Long: `RosterHub admin CLI manages the club membership backend: run schema
migrations, inspect pending join requests, and change member roles without
going through the HTTP API.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		db := openDatabase()
		if err := database.Migrate(db); err != nil {
			logger.Error("Migration failed: %v", err)
			os.Exit(1)
		}
		logger.Info("Migrations applied")
	},
}

var listPendingCmd = &cobra.Command{
	Use:   "list-pending",
	Short: "List pending join requests",
	Long: `List join requests awaiting officer review. Pass --team to restrict
the listing to one team.

Example:
  rosterctl list-pending --team 4f7c2e…`,
	Run: func(cmd *cobra.Command, args []string) {
		db := openDatabase()
		teamID, _ := cmd.Flags().GetString("team")

		query := db.Where("status = ?", string(membership.StatusPending))
		if teamID != "" {
			query = query.Where("team_id = ?", teamID)
		}

		var pending []models.Profile
		if err := query.Order("updated_at asc").Find(&pending).Error; err != nil {
			logger.Error("Failed to list pending join requests: %v", err)
			os.Exit(1)
		}

		if len(pending) == 0 {
			fmt.Println("No pending join requests.")
			return
		}
		for _, p := range pending {
			team := ""
			if p.TeamID != nil {
				team = *p.TeamID
			}
			fmt.Printf("%s  %-24s  team=%s  intended=%s  since=%s\n",
				p.ID, p.DisplayName, team, p.IntendedRole, p.UpdatedAt.Format("2006-01-02"))
		}
	},
}

var promoteCmd = &cobra.Command{
	Use:   "promote <profile-id> <role>",
	Short: "Change a member's granted role",
	Long: `Change a member's granted role directly. When the new role is an
exclusive office (president or vice president) and another member already
holds it, the incumbent is demoted to admin first.

Example:
  rosterctl promote 4f7c2e… vice_president`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		profileID := args[0]
		newRole := membership.Role(args[1])
		if !newRole.Valid() {
			logger.Error("Invalid role: %s", args[1])
			os.Exit(1)
		}

		db := openDatabase()
		hub := repository.NewAuthHub()
		directory := repository.NewDirectoryRepository(db, hub)
		ctx := context.Background()

		target, err := directory.ProfileByID(ctx, profileID)
		if err != nil {
			logger.Error("Failed to load profile: %v", err)
			os.Exit(1)
		}

		if newRole.IsOfficer() && target.TeamID != "" {
			incumbent, err := directory.OfficerHolder(ctx, target.TeamID, newRole)
			if err != nil {
				logger.Error("Failed to check office holder: %v", err)
				os.Exit(1)
			}
			if incumbent != nil && incumbent.ID != profileID {
				if err := directory.DemoteToAdmin(ctx, incumbent.ID); err != nil {
					logger.Error("Failed to demote incumbent %s: %v", incumbent.ID, err)
					os.Exit(1)
				}
				logger.Info("Demoted incumbent %s (%s) to admin", incumbent.ID, incumbent.DisplayName)
			}
		}

		if err := directory.UpdateProfileFields(ctx, profileID, membership.ProfilePatch{Role: &newRole}); err != nil {
			logger.Error("Failed to update role: %v", err)
			os.Exit(1)
		}
		logger.Info("Profile %s is now %s", profileID, newRole)
	},
}

func init() {
	listPendingCmd.Flags().String("team", "", "Restrict to one team's join requests")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(listPendingCmd)
	rootCmd.AddCommand(promoteCmd)
}

func main() {
	initLogger()
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed: %v", err)
		os.Exit(1)
	}
}
