// Package discovery advertises and finds skyreg session servers with mDNS.
//
// A session server registers itself as a "_skyreg._tcp" service so that
// renderers on the same network can find it without configuration. The TXT
// record carries the server version and the websocket path.
//
// # Advertising
//
//	adv, err := discovery.Advertise("skyreg on kiosk-3", 8090, map[string]string{
//	    "version": version.Version,
//	    "path":    "/ws",
//	})
//	if err != nil {
//	    return err
//	}
//	defer adv.Shutdown()
//
// # Browsing
//
//	instances, err := discovery.NewScanner().Scan(ctx)
//	for _, inst := range instances {
//	    fmt.Println(inst.Name, inst.SessionURL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Renderer and server must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// Scanners hold no state between scans. Multiple scans can run
// simultaneously without interference.
package discovery
