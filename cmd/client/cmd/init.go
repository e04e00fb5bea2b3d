package cmd

import (
	"medisync/cmd/client/cmd/appointment"
	"medisync/cmd/client/cmd/auth"
	"medisync/cmd/client/cmd/measure"
	"medisync/cmd/client/cmd/patient"
	"medisync/cmd/client/cmd/prescription"
	"medisync/cmd/client/cmd/sync"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(patient.PatientCmd)
	patient.PatientCmd.AddCommand(patient.RegisterCmd)
	patient.PatientCmd.AddCommand(patient.ListCmd)

	rootCmd.AddCommand(measure.MeasureCmd)
	measure.MeasureCmd.AddCommand(measure.BPCmd)
	measure.MeasureCmd.AddCommand(measure.SugarCmd)

	rootCmd.AddCommand(prescription.PrescriptionCmd)
	prescription.PrescriptionCmd.AddCommand(prescription.AddCmd)
	prescription.PrescriptionCmd.AddCommand(prescription.StopCmd)
	prescription.PrescriptionCmd.AddCommand(prescription.ListCmd)

	rootCmd.AddCommand(appointment.AppointmentCmd)
	appointment.AppointmentCmd.AddCommand(appointment.ScheduleCmd)
	appointment.AppointmentCmd.AddCommand(appointment.CancelCmd)
	appointment.AppointmentCmd.AddCommand(appointment.VisitCmd)
	appointment.AppointmentCmd.AddCommand(appointment.ListCmd)

	rootCmd.AddCommand(sync.SyncCmd)
	sync.SyncCmd.AddCommand(sync.NowCmd)
	sync.SyncCmd.AddCommand(sync.StatusCmd)
	sync.SyncCmd.AddCommand(sync.WatchCmd)
	sync.SyncCmd.AddCommand(sync.ResetTokenCmd)
}
