package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/classbook/core/classroom"
	"github.com/trezcool/classbook/core/roster"
)

func (cli *commandLine) listStudents() error {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUM\tNAME\tMEMO\tID")
	for _, st := range cli.class.Roster.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.Number, st.Name, st.Memo, st.ID)
	}
	return w.Flush()
}

func (cli *commandLine) addStudent(num, name, memo string) error {
	if num == "" {
		num = cli.class.Roster.SuggestNumber()
	}
	st, err := cli.class.Roster.Add(roster.NewStudent{Number: num, Name: name, Memo: memo})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "added %s %s (%s)\n", st.Number, st.Name, st.ID)
	return nil
}

func (cli *commandLine) deleteStudent(id string, yes bool) error {
	conf, err := cli.class.RequestDeletion(classroom.DeleteStudent, id)
	if err != nil {
		return err
	}
	if !yes {
		ok, err := cli.confirm(conf.Prompt)
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}
	if err := cli.class.CommitDeletion(conf.Token); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "deleted")
	return nil
}
