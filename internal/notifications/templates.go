package notifications

import "html/template"

var bookingConfirmationTmpl = template.Must(template.New("booking_confirmation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1a73e8;">Booking Confirmed</h2>
  <p>Dear {{.Name}},</p>
  <p>Your booking has been received. Our team will contact you shortly to confirm the details.</p>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td style="padding: 6px; font-weight: bold;">Booking ID</td><td style="padding: 6px;">{{.BookingID}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Service</td><td style="padding: 6px;">{{.ServiceType}}</td></tr>
    {{if .Route}}<tr><td style="padding: 6px; font-weight: bold;">Route</td><td style="padding: 6px;">{{.Route}}</td></tr>{{end}}
    {{if .Date}}<tr><td style="padding: 6px; font-weight: bold;">Date</td><td style="padding: 6px;">{{.Date}}</td></tr>{{end}}
    {{if .Time}}<tr><td style="padding: 6px; font-weight: bold;">Time</td><td style="padding: 6px;">{{.Time}}</td></tr>{{end}}
    {{if .CabName}}<tr><td style="padding: 6px; font-weight: bold;">Cab</td><td style="padding: 6px;">{{.CabName}}</td></tr>{{end}}
    <tr><td style="padding: 6px; font-weight: bold;">Total Fare</td><td style="padding: 6px;">&#8377;{{printf "%.2f" .TotalFare}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Amount Paid</td><td style="padding: 6px;">&#8377;{{printf "%.2f" .AmountPaid}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Remaining</td><td style="padding: 6px;">&#8377;{{printf "%.2f" .RemainingAmount}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Payment Status</td><td style="padding: 6px;">{{.PaymentStatus}}</td></tr>
  </table>
  <p>Thank you for choosing Penta Cab.</p>
</div>`))

var adminNotificationTmpl = template.Must(template.New("admin_notification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New Booking Request</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td style="padding: 6px; font-weight: bold;">Booking ID</td><td style="padding: 6px;">{{.BookingID}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Name</td><td style="padding: 6px;">{{.Name}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Email</td><td style="padding: 6px;">{{.Email}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Mobile</td><td style="padding: 6px;">{{.Mobile}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Service</td><td style="padding: 6px;">{{.ServiceType}}</td></tr>
    {{if .Route}}<tr><td style="padding: 6px; font-weight: bold;">Route</td><td style="padding: 6px;">{{.Route}}</td></tr>{{end}}
    {{if .Date}}<tr><td style="padding: 6px; font-weight: bold;">Date</td><td style="padding: 6px;">{{.Date}} {{.Time}}</td></tr>{{end}}
    <tr><td style="padding: 6px; font-weight: bold;">Payment</td><td style="padding: 6px;">{{.PaymentStatus}} (paid &#8377;{{printf "%.2f" .AmountPaid}} of &#8377;{{printf "%.2f" .TotalFare}})</td></tr>
  </table>
</div>`))

var driverDetailsTmpl = template.Must(template.New("driver_details").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1a73e8;">Your Driver Is Assigned</h2>
  <p>Dear {{.Name}},</p>
  <p>A driver has been assigned for your booking <strong>{{.BookingID}}</strong>.</p>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td style="padding: 6px; font-weight: bold;">Driver</td><td style="padding: 6px;">{{.DriverName}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">WhatsApp</td><td style="padding: 6px;">{{.WhatsappNumber}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Vehicle</td><td style="padding: 6px;">{{.CarName}} ({{.VehicleNumber}})</td></tr>
    {{if .Route}}<tr><td style="padding: 6px; font-weight: bold;">Route</td><td style="padding: 6px;">{{.Route}}</td></tr>{{end}}
    {{if .Date}}<tr><td style="padding: 6px; font-weight: bold;">Pickup</td><td style="padding: 6px;">{{.Date}} {{.Time}}</td></tr>{{end}}
  </table>
  <p>Have a safe trip.</p>
</div>`))

var serviceConfirmationTmpl = template.Must(template.New("service_confirmation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1a73e8;">{{.ServiceType}} Booking Confirmation</h2>
  {{if .Name}}<p>Dear {{.Name}},</p>{{end}}
  <table style="width: 100%; border-collapse: collapse;">
    {{if .BookingID}}<tr><td style="padding: 6px; font-weight: bold;">Booking ID</td><td style="padding: 6px;">{{.BookingID}}</td></tr>{{end}}
    {{if .Route}}<tr><td style="padding: 6px; font-weight: bold;">Route</td><td style="padding: 6px;">{{.Route}}</td></tr>{{end}}
    {{if .CarType}}<tr><td style="padding: 6px; font-weight: bold;">Cab</td><td style="padding: 6px;">{{.CarType}}{{if .CarPrice}} (&#8377;{{printf "%.0f" .CarPrice}}){{end}}</td></tr>{{end}}
    {{if .Date}}<tr><td style="padding: 6px; font-weight: bold;">Date</td><td style="padding: 6px;">{{.Date}} {{.Time}}</td></tr>{{end}}
    {{if .TotalFare}}<tr><td style="padding: 6px; font-weight: bold;">Total Fare</td><td style="padding: 6px;">&#8377;{{printf "%.2f" .TotalFare}}</td></tr>{{end}}
  </table>
  <p>Thank you for choosing Penta Cab.</p>
</div>`))

var inquiryTmpl = template.Must(template.New("inquiry").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  {{if .ServiceAvailable}}<h2>New Local Cab Inquiry</h2>{{else}}<h2>Service Not Available - Local Inquiry</h2>
  <p style="background-color: #fff3cd; padding: 12px;">A customer searched for a service that is not currently available.</p>{{end}}
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td style="padding: 6px; font-weight: bold;">City</td><td style="padding: 6px;">{{.City}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Package</td><td style="padding: 6px;">{{.Package}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Date</td><td style="padding: 6px;">{{.Date}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Pickup Time</td><td style="padding: 6px;">{{.PickupTime}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Name</td><td style="padding: 6px;">{{.Name}}</td></tr>
    <tr><td style="padding: 6px; font-weight: bold;">Phone</td><td style="padding: 6px;">{{.PhoneNumber}}</td></tr>
  </table>
  <p>Please contact the customer to assist with their booking request.</p>
</div>`))

var routeAnnouncementTmpl = template.Must(template.New("route_announcement").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New {{.Kind}} Route: {{.Route}}</h2>
  <p>We are excited to announce a new route: <strong>{{.Route}}</strong>.</p>
  <ul>
    {{range .Cars}}{{if .Available}}<li><strong>{{.Type}}</strong>: &#8377;{{printf "%.0f" .Price}}</li>{{end}}{{end}}
  </ul>
  <p>Book now and enjoy reliable transfers.</p>
</div>`))

var declineTmpl = template.Must(template.New("decline").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Booking Update</h2>
  <p>We are sorry, but we are unable to serve your booking request{{if .Route}} for <strong>{{.Route}}</strong>{{end}} at this time.</p>
  {{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
  <p>We hope to serve you on your next trip.</p>
</div>`))
