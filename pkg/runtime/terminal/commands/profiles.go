package commands

import (
	"fmt"

	"github.com/de-tools/deal-atlas/pkg/services/deal"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	profilesFile  *string
	newController deal.ControllerFactory
}

func NewProfilesCmd(newController deal.ControllerFactory, profilesFile *string) *cobra.Command {
	pc := &ProfilesCmd{profilesFile: profilesFile, newController: newController}
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the available assumption profiles",
		Args:  cobra.NoArgs,
		RunE:  pc.run,
	}
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	ctrl, err := pc.newController(*pc.profilesFile)
	if err != nil {
		return err
	}

	profiles, err := ctrl.ListProfiles(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	for _, p := range profiles {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
			return err
		}
	}
	return nil
}
