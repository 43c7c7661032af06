package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "List the sprints in the dataset",
	RunE:  runSprints,
}

func runSprints(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}
	st := eng.Store()
	for _, id := range st.Sprints() {
		v, err := st.BySprint(id)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s(%d tickets)%s\n", id, colorDim, len(v), colorReset)
	}
	return nil
}
